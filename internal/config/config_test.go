package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: vars})
	return cfg, err
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(t, map[string]string{"ACCESS_TOKEN_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "allow", cfg.Orders.DeletePaid)
	assert.Equal(t, "paypal", cfg.Payment.Provider)
	assert.Equal(t, "USD", cfg.Payment.Currency)
	assert.NoError(t, cfg.Validate())
}

func TestParse_MissingSecret(t *testing.T) {
	_, err := parse(t, map[string]string{})
	assert.Error(t, err)
}

func TestParse_Prefixes(t *testing.T) {
	cfg, err := parse(t, map[string]string{
		"ACCESS_TOKEN_SECRET":   "s3cret",
		"ACCESS_TOKEN_TTL":      "90m",
		"PAYMENT_PROVIDER":      "braintree",
		"PAYMENT_CURRENCY":      "EUR",
		"PAYPAL_CLIENT_ID":      "pp-id",
		"BRAINTREE_MERCHANT_ID": "bt-merchant",
		"ORDERS_DELETE_PAID":    "reject",
	})
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "braintree", cfg.Payment.Provider)
	assert.Equal(t, "EUR", cfg.Payment.Currency)
	assert.Equal(t, "pp-id", cfg.Paypal.ClientID)
	assert.Equal(t, "bt-merchant", cfg.BrainTree.MerchantID)
	assert.Equal(t, "reject", cfg.Orders.DeletePaid)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"driver", "DATABASE_DRIVER", "mongo"},
		{"delete policy", "ORDERS_DELETE_PAID", "sometimes"},
		{"provider", "PAYMENT_PROVIDER", "stripe"},
		{"ttl", "ACCESS_TOKEN_TTL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, map[string]string{
				"ACCESS_TOKEN_SECRET": "s3cret",
				tt.key:                tt.val,
			})
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}
