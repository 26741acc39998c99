package payout

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// State is the position of a payout attempt in its workflow.
type State string

const (
	StateIdle                    State = "idle"
	StateCheckingRecipient       State = "checking_recipient"
	StateCreatingRecipient       State = "creating_recipient"
	StatePersistingRecipientCode State = "persisting_recipient_code"
	StateInitiatingTransfer      State = "initiating_transfer"
	StateSucceeded               State = "succeeded"
	StateFailed                  State = "failed"
)

// BankDetails identifies a bank-transfer payout destination.
type BankDetails struct {
	BankCode      string
	AccountNumber string
}

// MobileDetails identifies a mobile-money payout destination.
type MobileDetails struct {
	Phone string
}

// Request describes one payout attempt. Amount is in major currency units
// (naira); conversion to minor units happens only when the transfer body is
// built. RecipientCode carries the code already stored on the person record,
// fetched together with the rest of the payment profile, so the recipient
// check costs no extra round trip.
type Request struct {
	PersonID      int64
	Name          string
	Amount        float64
	Reason        string
	RecipientCode string
	Bank          *BankDetails
	Mobile        *MobileDetails
}

// Result reports the terminal state of a payout attempt. Warnings carry
// non-fatal problems such as a recipient code that could not be persisted.
type Result struct {
	State         State
	RecipientCode string
	Warnings      []string
}

// Gateway is the payment gateway surface the orchestrator drives.
type Gateway interface {
	CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (string, error)
	CreateMobileRecipient(ctx context.Context, name, phone string) (string, error)
	Transfer(ctx context.Context, recipientCode string, amountMinor int64, reason string) error
}

// RecipientPersister writes a freshly created recipient code back onto the
// person record so future payouts reuse it.
type RecipientPersister interface {
	SaveRecipientCode(ctx context.Context, personID int64, code string) error
}

// Locker guards against two concurrent payout attempts for the same person
// racing the read-then-write of the recipient code.
type Locker interface {
	Lock(ctx context.Context, personID int64) error
	Unlock(ctx context.Context, personID int64)
}

// Orchestrator drives the three-step payout workflow: ensure a gateway
// recipient exists, persist a newly created recipient code, then initiate
// the transfer. Steps are strictly sequential.
type Orchestrator struct {
	gateway Gateway
	store   RecipientPersister
	locks   Locker
}

// New creates a payout orchestrator.
func New(gateway Gateway, store RecipientPersister, locks Locker) *Orchestrator {
	return &Orchestrator{gateway: gateway, store: store, locks: locks}
}

// MinorUnits converts a major-unit amount into the smallest currency unit.
// Inputs are trusted to carry at most two fractional digits; rounding
// absorbs float representation noise.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Pay runs one payout attempt to its terminal state. Local validation never
// touches the network; gateway failures carry the upstream message and a
// retryable hint.
func (o *Orchestrator) Pay(ctx context.Context, req Request) (Result, error) {
	result := Result{State: StateIdle}

	if req.PersonID == 0 {
		return fail(&result, validationFailure(fmt.Errorf("person id is required")))
	}
	if req.Amount <= 0 {
		return fail(&result, validationFailure(fmt.Errorf("amount must be positive, got %v", req.Amount)))
	}

	if err := o.locks.Lock(ctx, req.PersonID); err != nil {
		// Lock contention is retryable; it clears when the in-flight payout
		// for this person finishes.
		return fail(&result, &Failure{Step: StepValidation, Retryable: true, Err: err})
	}
	defer o.locks.Unlock(ctx, req.PersonID)

	result.State = StateCheckingRecipient
	code := req.RecipientCode

	if code == "" {
		// Details must be complete before any network call happens.
		mode, err := destinationMode(req)
		if err != nil {
			return fail(&result, validationFailure(err))
		}

		result.State = StateCreatingRecipient
		code, err = o.createRecipient(ctx, req, mode)
		if err != nil {
			return fail(&result, &Failure{Step: StepRecipientCreation, Retryable: true, Err: err})
		}

		result.State = StatePersistingRecipientCode
		if err := o.store.SaveRecipientCode(ctx, req.PersonID, code); err != nil {
			// Non-fatal: the transfer can proceed with the in-memory code,
			// but the next payout for this person will recreate a recipient.
			warning := fmt.Sprintf("failed to persist recipient code %s: %v", code, err)
			result.Warnings = append(result.Warnings, warning)
			log.Warn().
				Int64("person_id", req.PersonID).
				Str("recipient_code", code).
				Err(err).
				Msg("Recipient code could not be persisted")
		}
	} else {
		log.Debug().
			Int64("person_id", req.PersonID).
			Msg("Reusing stored gateway recipient")
	}

	result.RecipientCode = code
	result.State = StateInitiatingTransfer
	if err := o.gateway.Transfer(ctx, code, MinorUnits(req.Amount), req.Reason); err != nil {
		return fail(&result, &Failure{Step: StepTransfer, Retryable: true, Err: err})
	}

	result.State = StateSucceeded
	log.Info().
		Int64("person_id", req.PersonID).
		Float64("amount", req.Amount).
		Str("recipient_code", code).
		Msg("Payout succeeded")
	return result, nil
}

// destinationMode validates the payout destination and reports which mode to
// use. Bank transfer wins when both detail sets are complete.
func destinationMode(req Request) (string, error) {
	if req.Bank != nil && req.Bank.BankCode != "" && req.Bank.AccountNumber != "" {
		return "bank", nil
	}
	if req.Mobile != nil && req.Mobile.Phone != "" {
		return "mobile", nil
	}
	return "", ErrIncompleteBankDetails
}

func (o *Orchestrator) createRecipient(ctx context.Context, req Request, mode string) (string, error) {
	if mode == "mobile" {
		return o.gateway.CreateMobileRecipient(ctx, req.Name, req.Mobile.Phone)
	}
	return o.gateway.CreateRecipient(ctx, req.Name, req.Bank.AccountNumber, req.Bank.BankCode)
}

func fail(result *Result, failure *Failure) (Result, error) {
	result.State = StateFailed
	return *result, failure
}
