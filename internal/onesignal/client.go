package onesignal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://onesignal.com/api/v1"

// ErrUnknownSegment is returned for a segment outside the three subscriber
// groups the app maintains.
var ErrUnknownSegment = errors.New("unknown user segment")

// segmentNames maps API segment keys to the segment names configured in the
// OneSignal dashboard.
var segmentNames = map[string]string{
	"chew":    "Subscribed CHEWs",
	"doctor":  "Subscribed Doctors",
	"patient": "Subscribed Patients",
}

// Client talks to the OneSignal push-notification API.
type Client struct {
	httpClient *resty.Client
	appID      string
}

// NewClient creates a OneSignal client. An empty baseURL selects the
// production API.
func NewClient(baseURL, appID, restAPIKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Basic "+restAPIKey)

	return &Client{httpClient: httpClient, appID: appID}
}

type notificationBody struct {
	AppID            string              `json:"app_id"`
	IncludedSegments []string            `json:"included_segments,omitempty"`
	Filters          []map[string]string `json:"filters,omitempty"`
	Contents         map[string]string   `json:"contents"`
	Headings         map[string]string   `json:"headings"`
}

type notificationResponse struct {
	ID     string   `json:"id"`
	Errors []string `json:"errors"`
}

// SendToSegment pushes a notification to every subscriber in the given
// segment (chew, doctor or patient).
func (c *Client) SendToSegment(ctx context.Context, segment, title, message string) error {
	name, ok := segmentNames[segment]
	if !ok {
		return ErrUnknownSegment
	}

	body := notificationBody{
		AppID:            c.appID,
		IncludedSegments: []string{name},
		Contents:         map[string]string{"en": message},
		Headings:         map[string]string{"en": title},
	}
	return c.send(ctx, body)
}

// SendToUser pushes a notification to the single subscriber tagged with the
// given email.
func (c *Client) SendToUser(ctx context.Context, email, title, message string) error {
	body := notificationBody{
		AppID: c.appID,
		Filters: []map[string]string{
			{"field": "tag", "key": "email", "relation": "=", "value": email},
		},
		Contents: map[string]string{"en": message},
		Headings: map[string]string{"en": title},
	}
	return c.send(ctx, body)
}

func (c *Client) send(ctx context.Context, body notificationBody) error {
	var result notificationResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/notifications")
	if err != nil {
		return fmt.Errorf("failed to call onesignal: %w", err)
	}

	if resp.IsError() || len(result.Errors) > 0 {
		message := "failed to send notification"
		if len(result.Errors) > 0 {
			message = result.Errors[0]
		}
		log.Warn().
			Int("status", resp.StatusCode()).
			Str("message", message).
			Msg("OneSignal rejected notification")
		return fmt.Errorf("onesignal returned %d: %s", resp.StatusCode(), message)
	}

	log.Info().
		Str("notification_id", result.ID).
		Msg("Notification sent")
	return nil
}
