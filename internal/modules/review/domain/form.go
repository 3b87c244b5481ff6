package domain

import (
	"fmt"
	"strings"

	apperrors "cvp/internal/platform/errors"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", fmt.Errorf("%w: unknown review action %q", apperrors.ErrInvalidInput, raw)
	}
}

// Form is the transient state of a review decision.
type Form struct {
	Action     Action
	Feedback   string
	Submitting bool
}

// CanSubmit mirrors the submit control: disabled while a request is in
// flight, and for a rejection without feedback.
func (f Form) CanSubmit() bool {
	if f.Submitting {
		return false
	}
	return f.Check() == nil
}

func (f Form) Check() error {
	switch f.Action {
	case ActionApprove:
		return nil
	case ActionReject:
		if strings.TrimSpace(f.Feedback) == "" {
			return apperrors.ErrFeedbackRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown review action %q", apperrors.ErrInvalidInput, f.Action)
	}
}
