package handlers

import (
	"net/http"

	"motoslot/models"
	"motoslot/services/payment"
	"motoslot/services/settlement"
	"motoslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment intent and verification endpoints.
type PaymentHandler struct {
	Orchestrator payment.PaymentOrchestrator
	Settlement   settlement.SettlementEngine
}

func NewPaymentHandler(orchestrator payment.PaymentOrchestrator, engine settlement.SettlementEngine) *PaymentHandler {
	return &PaymentHandler{Orchestrator: orchestrator, Settlement: engine}
}

// CreatePaymentIntentHandler locks the booking's slot and returns a pending
// payment with the bank redirect URL.
func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	logger := getLogger(c)

	callerID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Orchestrator.CreatePaymentIntent(c.Request.Context(), callerID.(string), req)
	if err != nil {
		logger.Warn("create payment intent failed",
			zap.String("bookingId", req.BookingID),
			zap.Error(err),
		)
		utils.JSONDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// VerifyPaymentHandler settles a payment after the bank redirect (or on a
// gateway callback).
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	logger := getLogger(c)

	if _, exists := c.Get("userID"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Settlement.Settle(c.Request.Context(), req.PaymentID, req.TransactionID)
	if err != nil {
		logger.Warn("payment settlement failed",
			zap.String("paymentId", req.PaymentID),
			zap.Error(err),
		)
		utils.JSONDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
