package payout

import (
	"errors"
	"fmt"
)

// Step names the phase of the payout workflow a failure belongs to. The
// three classes stay distinguishable to the caller instead of collapsing
// into one generic error string.
type Step string

const (
	StepValidation        Step = "validation"
	StepRecipientCreation Step = "recipient_creation"
	StepTransfer          Step = "transfer"
)

// ErrIncompleteBankDetails means neither a complete bank-transfer detail set
// nor a complete mobile-money detail set was supplied. It is raised before
// any network call is made.
var ErrIncompleteBankDetails = errors.New("bank or mobile-money details are incomplete")

// ErrPayoutInProgress means another payout for the same person currently
// holds the per-person lock.
var ErrPayoutInProgress = errors.New("a payout for this person is already in progress")

// Failure is the terminal error of a payout attempt. Retryable is true for
// gateway and network errors, false for local validation errors.
type Failure struct {
	Step      Step
	Retryable bool
	Err       error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("payout failed at %s: %v", f.Step, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func validationFailure(err error) *Failure {
	return &Failure{Step: StepValidation, Retryable: false, Err: err}
}
