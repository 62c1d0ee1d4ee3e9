package service

import (
	"context"
	"fmt"

	"fix-manufacture-api/internal/client"
	"fix-manufacture-api/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	// CreateIntent asks the payment provider for a client secret covering price.
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type paymentServiceImpl struct {
	paymentClient client.PaymentClient
	currency      string
	log           *zap.Logger
}

func NewPaymentService(paymentClient client.PaymentClient, currency string, log *zap.Logger) PaymentService {
	return &paymentServiceImpl{
		paymentClient: paymentClient,
		currency:      currency,
		log:           log,
	}
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := decimal.NewFromFloat(price).Round(2)
	if !amount.IsPositive() {
		return "", model.ErrInvalidAmount
	}

	secret, err := s.paymentClient.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return "", fmt.Errorf("payment provider create intent: %w", err)
	}

	s.log.Info("payment intent created",
		zap.Int64("amount_minor", amount.Shift(2).IntPart()),
		zap.String("currency", s.currency),
	)
	return secret, nil
}
