package kiosk

import (
	"fmt"

	"github.com/junaidrashid-git/cybereatdiri/apperr"
)

// FlowState is a step of the checkout or credit purchase dialogs.
type FlowState int

const (
	StateIdle FlowState = iota
	StateCollectingDetails
	StateAwaitingPaymentChoice
	StateAwaitingConfirmation
	StateCommitted
	StateCancelled
)

var stateNames = map[FlowState]string{
	StateIdle:                  "idle",
	StateCollectingDetails:     "collecting_details",
	StateAwaitingPaymentChoice: "awaiting_payment_choice",
	StateAwaitingConfirmation:  "awaiting_confirmation",
	StateCommitted:             "committed",
	StateCancelled:             "cancelled",
}

func (s FlowState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FlowState(%d)", int(s))
}

func (s FlowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Done reports whether the flow reached a terminal state.
func (s FlowState) Done() bool {
	return s == StateCommitted || s == StateCancelled
}

func transitionError(from FlowState, op string) error {
	return fmt.Errorf("%s while %s: %w", op, from, apperr.ErrInvalidTransition)
}
