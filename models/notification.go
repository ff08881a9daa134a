package models

// BookingSMS carries everything needed to render and deliver a booking
// confirmation text message.
type BookingSMS struct {
	Phone          string `json:"phone"`
	BookingRef     string `json:"bookingRef"`
	DateTime       string `json:"dateTime"` // RFC3339
	Location       string `json:"location"`
	InstructorName string `json:"instructorName,omitempty"`
	ContactPhone   string `json:"contactPhone,omitempty"`
}
