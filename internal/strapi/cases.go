package strapi

import (
	"context"
	"fmt"
	"net/http"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

// ListCases fetches every case with the owning CHEW and visit history
// populated.
func (c *Client) ListCases(ctx context.Context) ([]normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/cases?populate=*", nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeList(payload)
}

// GetCase fetches a single case with relations populated.
func (c *Client) GetCase(ctx context.Context, id int64) (normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cases/%d?populate=*", id), nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeRecord(payload)
}

// CreateCase creates a case record. The content API expects collection
// writes wrapped in a data envelope.
func (c *Client) CreateCase(ctx context.Context, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPost, "/api/cases", map[string]interface{}{"data": fields})
	return err
}

// UpdateCase writes the given fields onto a case record.
func (c *Client) UpdateCase(ctx context.Context, id int64, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cases/%d", id), map[string]interface{}{"data": fields})
	return err
}

// DeleteCase removes a case record.
func (c *Client) DeleteCase(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cases/%d", id), nil)
	return err
}
