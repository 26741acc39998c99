package strapi

import (
	"context"
	"fmt"
	"net/http"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

// ListHealthTips fetches every published health tip.
func (c *Client) ListHealthTips(ctx context.Context) ([]normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/health-tips", nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeList(payload)
}

// GetHealthTip fetches a single health tip.
func (c *Client) GetHealthTip(ctx context.Context, id int64) (normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/health-tips/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeRecord(payload)
}

// CreateHealthTip creates a health tip. The feature image is uploaded
// through the file forwarder first, so the record itself is plain JSON.
func (c *Client) CreateHealthTip(ctx context.Context, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPost, "/api/health-tips", map[string]interface{}{"data": fields})
	return err
}

// UpdateHealthTip writes the given fields onto a health tip.
func (c *Client) UpdateHealthTip(ctx context.Context, id int64, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/health-tips/%d", id), map[string]interface{}{"data": fields})
	return err
}

// DeleteHealthTip removes a health tip.
func (c *Client) DeleteHealthTip(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/health-tips/%d", id), nil)
	return err
}

// ListAdverts fetches every advertisement.
func (c *Client) ListAdverts(ctx context.Context) ([]normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/adverts", nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeList(payload)
}

// GetAdvert fetches a single advertisement.
func (c *Client) GetAdvert(ctx context.Context, id int64) (normalize.Record, error) {
	payload, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/adverts/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeRecord(payload)
}

// CreateAdvert creates an advertisement.
func (c *Client) CreateAdvert(ctx context.Context, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPost, "/api/adverts", map[string]interface{}{"data": fields})
	return err
}

// UpdateAdvert writes the given fields onto an advertisement.
func (c *Client) UpdateAdvert(ctx context.Context, id int64, fields map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/adverts/%d", id), map[string]interface{}{"data": fields})
	return err
}

// DeleteAdvert removes an advertisement.
func (c *Client) DeleteAdvert(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/adverts/%d", id), nil)
	return err
}
