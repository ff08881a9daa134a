package handlers

import (
	"net/http"

	"motoslot/models"
	"motoslot/services/booking"
	"motoslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the admin manual booking endpoint.
type BookingHandler struct {
	Manual booking.ManualBookingService
}

func NewBookingHandler(manual booking.ManualBookingService) *BookingHandler {
	return &BookingHandler{Manual: manual}
}

// CreateManualBookingHandler creates a directly-confirmed booking, bypassing
// payment. The route is gated by the admin middleware.
func (h *BookingHandler) CreateManualBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.ManualBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Manual.CreateManualBooking(c.Request.Context(), input)
	if err != nil {
		logger.Warn("manual booking failed",
			zap.String("slotId", input.SlotID),
			zap.Error(err),
		)
		utils.JSONDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
