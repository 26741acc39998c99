package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNoSession is returned when a token is unknown, expired, or revoked.
var ErrNoSession = errors.New("no active session")

// Session is one authenticated admin login. Tokens are opaque random ids,
// so logout actually revokes access instead of waiting out a signed token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// KV is the storage surface sessions live on. The document store provides
// it in production; tests use an in-memory map.
type KV interface {
	Upsert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error
	Get(ctx context.Context, docID string, result interface{}) error
	Remove(ctx context.Context, docID string) error
}

// Store creates, validates, and revokes admin sessions.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a session store. A zero ttl defaults to 24 hours.
func NewStore(kv KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{kv: kv, ttl: ttl}
}

func sessionDocID(token string) string {
	return "session::" + token
}

// Create mints a session for an authenticated admin and persists it with
// the store's ttl.
func (s *Store) Create(ctx context.Context, userID int64, email string) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.kv.Upsert(ctx, sessionDocID(sess.Token), sess, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().Int64("user_id", userID).Time("expires_at", sess.ExpiresAt).Msg("Admin session created")
	return sess, nil
}

// Get resolves a token to its session. Unknown and expired tokens both
// come back as ErrNoSession; the expiry check covers stores without
// server-side document expiry.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var sess Session
	if err := s.kv.Get(ctx, sessionDocID(token), &sess); err != nil {
		return nil, ErrNoSession
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Destroy revokes a session. Revoking an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.kv.Remove(ctx, sessionDocID(token)); err != nil {
		log.Debug().Err(err).Msg("Session removal found nothing to revoke")
	}
	return nil
}
