package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"marketdoctors.com/admin-gateway/internal/normalize"
)

// Role IDs as configured in the content API.
const (
	RoleDoctor  = 3
	RoleChew    = 4
	RolePatient = 5
	RoleAdmin   = 6
)

// ListUsers fetches every user with the given role, with relations
// populated.
func (c *Client) ListUsers(ctx context.Context, roleID int) ([]normalize.Record, error) {
	path := fmt.Sprintf("/api/users?populate=*&filters[role][id]=%d", roleID)
	payload, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeList(payload)
}

// GetUser fetches a single user with relations populated. The role filter
// keeps a doctor page from rendering a CHEW record with the same id.
func (c *Client) GetUser(ctx context.Context, id int64, roleID int) (normalize.Record, error) {
	path := fmt.Sprintf("/api/users/%d?populate=*&filters[role][id]=%d", id, roleID)
	payload, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeRecord(payload)
}

// UpdateUser writes the given fields onto a user record.
func (c *Client) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), fields)
	return err
}

// DeleteUser removes a user record.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	return err
}

// Register creates a doctor or CHEW account through the auth registration
// endpoint.
func (c *Client) Register(ctx context.Context, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", fields)
	return err
}

// Login checks a credential pair against the content API and returns the
// authenticated user's record. The role is pinned to admin; the dashboard
// has no other login.
func (c *Client) Login(ctx context.Context, identifier, password string) (normalize.Record, error) {
	body := map[string]interface{}{
		"identifier": identifier,
		"password":   password,
		"role":       RoleAdmin,
	}
	payload, err := c.do(ctx, http.MethodPost, "/api/auth/local?populate=*", body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		User map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.User == nil {
		return nil, &normalize.MalformedResponseError{Reason: "login response has no user object"}
	}
	rec, err := normalize.DecodeObject(envelope.User)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", rec.ID()).Msg("Admin credentials accepted upstream")
	return rec, nil
}

// SaveRecipientCode persists a newly created payment recipient code onto the
// person record. This is the only durable state the gateway originates.
func (c *Client) SaveRecipientCode(ctx context.Context, personID int64, code string) error {
	return c.UpdateUser(ctx, personID, map[string]interface{}{"recipient_code": code})
}

// CreateQualification attaches an uploaded qualification document to a user.
func (c *Client) CreateQualification(ctx context.Context, name, fileURL string, userID int64) error {
	body := map[string]interface{}{
		"data": map[string]interface{}{
			"name":     name,
			"file_url": fileURL,
			"user":     userID,
		},
	}
	_, err := c.do(ctx, http.MethodPost, "/api/qualifications", body)
	return err
}
