package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdoctors.com/admin-gateway/internal/payout"
)

type memoryKV struct {
	docs map[string]interface{}
}

func newMemoryKV() *memoryKV {
	return &memoryKV{docs: make(map[string]interface{})}
}

func (m *memoryKV) Insert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error {
	if _, ok := m.docs[docID]; ok {
		return ErrExists
	}
	m.docs[docID] = doc
	return nil
}

func (m *memoryKV) Remove(ctx context.Context, docID string) error {
	if _, ok := m.docs[docID]; !ok {
		return ErrNotFound
	}
	delete(m.docs, docID)
	return nil
}

func TestPayoutLockerSecondClaimRejected(t *testing.T) {
	kv := newMemoryKV()
	locker := NewPayoutLocker(kv, time.Minute)
	ctx := context.Background()

	require.NoError(t, locker.Lock(ctx, 12))
	err := locker.Lock(ctx, 12)
	assert.ErrorIs(t, err, payout.ErrPayoutInProgress)
}

func TestPayoutLockerDifferentPeopleIndependent(t *testing.T) {
	kv := newMemoryKV()
	locker := NewPayoutLocker(kv, time.Minute)
	ctx := context.Background()

	require.NoError(t, locker.Lock(ctx, 12))
	assert.NoError(t, locker.Lock(ctx, 13))
}

func TestPayoutLockerUnlockFreesTheLock(t *testing.T) {
	kv := newMemoryKV()
	locker := NewPayoutLocker(kv, time.Minute)
	ctx := context.Background()

	require.NoError(t, locker.Lock(ctx, 12))
	locker.Unlock(ctx, 12)
	assert.NoError(t, locker.Lock(ctx, 12))
}

func TestPayoutLockerUnlockWithoutLockIsQuiet(t *testing.T) {
	kv := newMemoryKV()
	locker := NewPayoutLocker(kv, time.Minute)

	// Nothing to assert beyond not panicking; removal of a missing lock
	// is tolerated.
	locker.Unlock(context.Background(), 99)
}
