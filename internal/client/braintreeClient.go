package client

import (
	"context"
	"fmt"

	"fix-manufacture-api/internal/config"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway
func NewBraintreeClient(cfg *config.Braintree) PaymentClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

// CreateIntent returns a client token for the Drop-in UI. Braintree binds the
// amount when the nonce is charged, not when the token is generated.
func (c *braintreeClientImpl) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	clientToken, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generate braintree client token: %w", err)
	}

	return clientToken, nil
}
