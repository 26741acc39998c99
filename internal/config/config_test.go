package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("ONESIGNAL_URL", "")
	t.Setenv("PAYSTACK_URL", "")
	t.Setenv("API_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.paystack.co", cfg.PaystackURL)
	// Empty so the onesignal client falls back to its own base URL, which
	// carries the /api/v1 prefix the notification endpoint lives under.
	assert.Equal(t, "", cfg.OneSignalURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.PayoutLockTTL)
	assert.Equal(t, 30*time.Second, cfg.ContentAPITimeout)
}

func TestLoadRequiresPaystackSecret(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYSTACK_SECRET_KEY")
}

func TestLoadToleratesMissingOneSignalCredentials(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("ONESIGNAL_APP_ID", "")
	t.Setenv("ONESIGNAL_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.OneSignalAppID)
	assert.Equal(t, "", cfg.OneSignalAPIKey)
}

func TestDurationOverrideInSeconds(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("SESSION_TTL_SECONDS", "3600")
	t.Setenv("PAYOUT_LOCK_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	// Unparseable values fall back to the default.
	assert.Equal(t, 5*time.Minute, cfg.PayoutLockTTL)
}
