package models

import "time"

// Payment status values. Status is monotone: pending -> success or failed,
// never reversed.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Supported payment providers.
const (
	ProviderTBC = "tbc"
	ProviderBOG = "bog"
)

// Payment is one attempt to pay for one booking. At most one payment per
// booking ever reaches status success; history of failed attempts is kept
// for audit.
type Payment struct {
	ID            string     `bson:"id" json:"id"`
	BookingID     string     `bson:"bookingId" json:"bookingId"`
	UserID        string     `bson:"userId" json:"userId"`
	Amount        float64    `bson:"amount" json:"amount"`
	Currency      string     `bson:"currency" json:"currency"`
	Provider      string     `bson:"provider" json:"provider"`
	Status        string     `bson:"status" json:"status"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentURL    string     `bson:"paymentUrl,omitempty" json:"paymentUrl,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt   *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	ErrorMessage  string     `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}

// Settled reports whether the payment has already reached a terminal state.
func (p *Payment) Settled() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}

// PaymentIntentRequest is the payload for creating a payment intent.
type PaymentIntentRequest struct {
	BookingID   string  `json:"bookingId" binding:"required"`
	UserID      string  `json:"userId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency"`
	Provider    string  `json:"provider" binding:"required"`
	CallbackURL string  `json:"callbackUrl"`
}

// VerifyPaymentRequest is the payload for settling a payment after the bank
// redirect (or a gateway callback).
type VerifyPaymentRequest struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	TransactionID string `json:"transactionId"`
}
