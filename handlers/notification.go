package handlers

import (
	"net/http"

	"motoslot/models"
	"motoslot/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the direct booking SMS endpoint.
type NotificationHandler struct {
	Dispatcher notification.ConfirmationDispatcher
}

func NewNotificationHandler(dispatcher notification.ConfirmationDispatcher) *NotificationHandler {
	return &NotificationHandler{Dispatcher: dispatcher}
}

// SendBookingSMSHandler queues a booking confirmation SMS.
func (h *NotificationHandler) SendBookingSMSHandler(c *gin.Context) {
	logger := getLogger(c)

	var sms models.BookingSMS
	if err := c.ShouldBindJSON(&sms); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if sms.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	if err := h.Dispatcher.DispatchBookingConfirmation(c.Request.Context(), sms); err != nil {
		logger.Warn("sms dispatch failed", zap.String("phone", sms.Phone), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue SMS"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
