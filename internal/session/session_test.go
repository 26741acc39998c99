package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	docs map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{docs: make(map[string][]byte)}
}

func (m *memoryKV) Upsert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.docs[docID] = encoded
	return nil
}

func (m *memoryKV) Get(ctx context.Context, docID string, result interface{}) error {
	encoded, ok := m.docs[docID]
	if !ok {
		return ErrNoSession
	}
	return json.Unmarshal(encoded, result)
}

func (m *memoryKV) Remove(ctx context.Context, docID string) error {
	delete(m.docs, docID)
	return nil
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, 3, "admin@marketdoctors.com")
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)

	got, err := store.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, "admin@marketdoctors.com", got.Email)
}

func TestTokensAreUnique(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)
	ctx := context.Background()

	first, err := store.Create(ctx, 3, "admin@marketdoctors.com")
	require.NoError(t, err)
	second, err := store.Create(ctx, 3, "admin@marketdoctors.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestUnknownTokenIsNoSession(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)

	_, err := store.Get(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEmptyTokenIsNoSession(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)

	_, err := store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestExpiredSessionIsNoSession(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, 3, "admin@marketdoctors.com")
	require.NoError(t, err)

	// Rewind the stored expiry; the in-memory KV has no server-side TTL.
	var stored Session
	require.NoError(t, kv.Get(ctx, "session::"+created.Token, &stored))
	stored.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, kv.Upsert(ctx, "session::"+created.Token, &stored, 0))

	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDestroyRevokes(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, 3, "admin@marketdoctors.com")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, created.Token))
	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDestroyUnknownTokenIsQuiet(t *testing.T) {
	store := NewStore(newMemoryKV(), time.Hour)
	assert.NoError(t, store.Destroy(context.Background(), "gone"))
}
