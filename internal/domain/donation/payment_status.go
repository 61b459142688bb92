package donation

import "fmt"

// PaymentStatus represents where a donation is in its payment lifecycle.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// validTransitions defines the payment state machine.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentProcessing: {PaymentCompleted, PaymentFailed},
	PaymentCompleted:  {PaymentRefunded},
	PaymentFailed:     {},
	PaymentRefunded:   {},
	PaymentCancelled:  {},
}

// IsValid returns true if the status is recognized.
func (s PaymentStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from s to target is allowed.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s PaymentStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsSuccessful reports whether money has been or is being collected.
func (s PaymentStatus) IsSuccessful() bool {
	return s == PaymentCompleted || s == PaymentProcessing
}

func (s PaymentStatus) String() string { return string(s) }

// ParsePaymentStatus converts a string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return status, nil
}
