package api

import (
	"context"

	"github.com/gorilla/mux"

	"marketdoctors.com/admin-gateway/internal/payout"
	"marketdoctors.com/admin-gateway/internal/session"
	"marketdoctors.com/admin-gateway/internal/strapi"
)

// Payer runs one payout attempt to its terminal state.
type Payer interface {
	Pay(ctx context.Context, req payout.Request) (payout.Result, error)
}

// Notifier pushes notifications to subscriber segments or single users.
type Notifier interface {
	SendToSegment(ctx context.Context, segment, title, message string) error
	SendToUser(ctx context.Context, email, title, message string) error
}

// Sessions is the admin session surface the server authenticates against.
type Sessions interface {
	Create(ctx context.Context, userID int64, email string) (*session.Session, error)
	Get(ctx context.Context, token string) (*session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// Server wires the admin dashboard's HTTP surface to the upstream clients.
type Server struct {
	content  *strapi.Client
	payer    Payer
	notifier Notifier
	sessions Sessions
}

// NewServer creates the API server.
func NewServer(content *strapi.Client, payer Payer, notifier Notifier, sessions Sessions) *Server {
	return &Server{
		content:  content,
		payer:    payer,
		notifier: notifier,
		sessions: sessions,
	}
}

// Router builds the configured router for this server.
func (s *Server) Router() *mux.Router {
	return s.setupRoutes()
}
