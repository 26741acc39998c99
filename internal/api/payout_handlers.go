package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/metrics"
	"marketdoctors.com/admin-gateway/internal/normalize"
	"marketdoctors.com/admin-gateway/internal/payout"
	"marketdoctors.com/admin-gateway/internal/strapi"
)

type payoutRequest struct {
	PersonID int64   `json:"personId"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

type payoutResponse struct {
	Status        string   `json:"status"`
	RecipientCode string   `json:"recipientCode,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

type payoutErrorResponse struct {
	Status    string `json:"status"`
	Step      string `json:"step"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// payoutHandler pays a CHEW. It fetches the payment profile first so the
// stored recipient code rides along into the orchestrator, then maps the
// terminal state onto the status space: local validation is the caller's
// fault (400), gateway failures are upstream's (502), and a concurrent
// attempt for the same person is a conflict (409).
func (s *Server) payoutHandler(w http.ResponseWriter, r *http.Request) {
	var req payoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PersonID <= 0 {
		respondError(w, http.StatusBadRequest, "personId is required")
		return
	}

	rec, err := s.content.GetUser(r.Context(), req.PersonID, strapi.RoleChew)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	profile := normalize.NormalizePaymentProfile(rec)

	payoutReq := payout.Request{
		PersonID:      profile.PersonID,
		Name:          profile.FullName,
		Amount:        req.Amount,
		Reason:        req.Reason,
		RecipientCode: profile.RecipientCode,
	}
	if profile.BankCode != "" && profile.AccountNumber != "" {
		payoutReq.Bank = &payout.BankDetails{
			BankCode:      profile.BankCode,
			AccountNumber: profile.AccountNumber,
		}
	} else if profile.Phone != "" {
		payoutReq.Mobile = &payout.MobileDetails{Phone: profile.Phone}
	}

	result, err := s.payer.Pay(r.Context(), payoutReq)
	if err != nil {
		if errors.Is(err, payout.ErrPayoutInProgress) {
			metrics.RecordPayoutAttempt("conflict")
			respondError(w, http.StatusConflict, err.Error())
			return
		}

		var failure *payout.Failure
		if errors.As(err, &failure) {
			metrics.RecordPayoutAttempt(string(failure.Step))
			status := http.StatusBadGateway
			if failure.Step == payout.StepValidation {
				status = http.StatusBadRequest
			}
			respondJSON(w, status, payoutErrorResponse{
				Status:    "failed",
				Step:      string(failure.Step),
				Message:   failure.Err.Error(),
				Retryable: failure.Retryable,
			})
			return
		}

		metrics.RecordPayoutAttempt("error")
		log.Error().Err(err).Int64("person_id", req.PersonID).Msg("Payout failed unexpectedly")
		respondError(w, http.StatusInternalServerError, "payout failed")
		return
	}

	metrics.RecordPayoutAttempt("succeeded")
	metrics.RecordPayoutAmount(payoutModeLabel(payoutReq), payout.MinorUnits(req.Amount))

	respondJSON(w, http.StatusOK, payoutResponse{
		Status:        string(result.State),
		RecipientCode: result.RecipientCode,
		Warnings:      result.Warnings,
	})
}

// payoutModeLabel names the destination for the amount counter. A payout
// that reused a stored recipient code never told us the destination type,
// so it gets its own label instead of guessing from the profile.
func payoutModeLabel(req payout.Request) string {
	if req.RecipientCode != "" {
		return "reused"
	}
	if req.Bank != nil {
		return "bank"
	}
	return "mobile_money"
}
