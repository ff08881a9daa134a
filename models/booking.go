package models

import (
	"strings"
	"time"
)

// Booking status values. A booking transitions out of pending_payment exactly
// once and is immutable afterwards.
const (
	BookingStatusPendingPayment = "pending_payment"
	BookingStatusConfirmed      = "confirmed"
	BookingStatusExpired        = "expired"
)

// Booking represents a user's claim on a slot. The slot document remains the
// authority on current occupancy; the booking only references it.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	SlotID          string     `bson:"slotId" json:"slotId"`
	UserID          string     `bson:"userId" json:"userId"`
	UserPhone       string     `bson:"userPhone,omitempty" json:"userPhone,omitempty"`
	Status          string     `bson:"status" json:"status"`
	ExpiresAt       time.Time  `bson:"expiresAt" json:"expiresAt"`
	PaymentID       string     `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	IsManualBooking bool       `bson:"isManualBooking" json:"isManualBooking"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	ConfirmedAt     *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
}

// ManualBookingInput is the payload for the admin-only manual booking path,
// which bypasses payment and confirms the booking directly.
type ManualBookingInput struct {
	SlotID    string `json:"slotId" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
	UserPhone string `json:"userPhone"`
}

// Reference returns the short booking reference used in confirmation SMS,
// e.g. "MS-3FA85F64".
func (b *Booking) Reference() string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "MS-" + strings.ToUpper(id)
}
