package models

// DomainError is the error type shared by the booking core. Handlers map the
// code to an HTTP status; services and repositories wrap these sentinels with
// fmt.Errorf("...: %w", err) so errors.Is keeps working across layers.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrUnauthenticated  = &DomainError{Code: "unauthenticated", Message: "must be logged in"}
	ErrPermissionDenied = &DomainError{Code: "permission-denied", Message: "admin access required"}
	ErrInvalidArgument  = &DomainError{Code: "invalid-argument", Message: "missing required fields"}

	ErrSlotNotFound    = &DomainError{Code: "not-found", Message: "slot not found"}
	ErrBookingNotFound = &DomainError{Code: "not-found", Message: "booking not found"}
	ErrPaymentNotFound = &DomainError{Code: "not-found", Message: "payment not found"}

	ErrSlotUnavailable = &DomainError{Code: "failed-precondition", Message: "slot is no longer available"}
	ErrAlreadySettled  = &DomainError{Code: "already-settled", Message: "payment is already settled"}
	ErrGateway         = &DomainError{Code: "gateway-error", Message: "payment gateway request failed"}
	ErrInternal        = &DomainError{Code: "internal", Message: "internal error"}
)
