package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/payout"
)

// KV is the subset of Store the payout locker needs. Tests swap in an
// in-memory map.
type KV interface {
	Insert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error
	Remove(ctx context.Context, docID string) error
}

// PayoutLocker serializes payout attempts per person with an
// insert-if-absent lock document. The expiry keeps a crashed gateway from
// wedging a person's payouts forever.
type PayoutLocker struct {
	kv  KV
	ttl time.Duration
}

// NewPayoutLocker creates a payout locker. A zero ttl defaults to five
// minutes, comfortably above the worst-case three-call payout.
func NewPayoutLocker(kv KV, ttl time.Duration) *PayoutLocker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PayoutLocker{kv: kv, ttl: ttl}
}

func payoutLockID(personID int64) string {
	return fmt.Sprintf("payout-lock::%d", personID)
}

// Lock claims the per-person payout lock. A held lock returns
// payout.ErrPayoutInProgress.
func (l *PayoutLocker) Lock(ctx context.Context, personID int64) error {
	doc := map[string]interface{}{
		"personId": personID,
		"lockedAt": time.Now().UTC().Format(time.RFC3339),
	}
	err := l.kv.Insert(ctx, payoutLockID(personID), doc, l.ttl)
	if err != nil {
		if errors.Is(err, ErrExists) {
			return payout.ErrPayoutInProgress
		}
		return fmt.Errorf("failed to claim payout lock: %w", err)
	}
	return nil
}

// Unlock releases the lock. Removal failures are logged, not returned; the
// expiry reclaims the lock either way.
func (l *PayoutLocker) Unlock(ctx context.Context, personID int64) {
	if err := l.kv.Remove(ctx, payoutLockID(personID)); err != nil && !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Int64("person_id", personID).Msg("Failed to release payout lock, waiting for expiry")
	}
}
