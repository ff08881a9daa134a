package models

import "time"

// Slot status values. A slot moves available -> locked -> booked, or back to
// available when a lock expires without settlement.
const (
	SlotStatusAvailable = "available"
	SlotStatusLocked    = "locked"
	SlotStatusBooked    = "booked"
)

// Slot represents a single bookable lesson window.
type Slot struct {
	ID             string     `bson:"id" json:"id"`
	StartTime      time.Time  `bson:"startTime" json:"startTime"`
	EndTime        time.Time  `bson:"endTime" json:"endTime"`
	Location       string     `bson:"location,omitempty" json:"location,omitempty"`
	InstructorName string     `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	ContactPhone   string     `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Status         string     `bson:"status" json:"status"`
	LockedBy       string     `bson:"lockedByUserId,omitempty" json:"lockedByUserId,omitempty"`
	LockExpiresAt  *time.Time `bson:"lockExpiresAt,omitempty" json:"lockExpiresAt,omitempty"`
	BookedBy       string     `bson:"bookedByUserId,omitempty" json:"bookedByUserId,omitempty"`
	BookingID      string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
}

// LockExpired reports whether the slot carries a lock whose TTL has elapsed.
// An expired lock is treated as released without waiting for the sweep.
func (s *Slot) LockExpired(now time.Time) bool {
	return s.Status == SlotStatusLocked &&
		s.LockExpiresAt != nil &&
		!s.LockExpiresAt.After(now)
}

// HeldBy reports whether the slot is currently locked by the given user,
// expired or not.
func (s *Slot) HeldBy(userID string) bool {
	return s.Status == SlotStatusLocked && s.LockedBy == userID
}
