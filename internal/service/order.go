package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/metrics"
	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeletePolicy decides whether a paid order may be deleted.
type DeletePolicy string

const (
	DeletePaidAllow  DeletePolicy = "allow"
	DeletePaidReject DeletePolicy = "reject"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, draft *dto.PlaceOrderRequest) (string, error)
	ConfirmPayment(ctx context.Context, orderID string, details *dto.ConfirmPaymentRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, email string) ([]*model.Order, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
	DeleteOrder(ctx context.Context, orderID string) (int64, error)
}

type orderServiceImpl struct {
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	deletePolicy DeletePolicy
	metrics      metrics.Recorder
	log          *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	deletePolicy DeletePolicy,
	recorder metrics.Recorder,
	log *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		deletePolicy: deletePolicy,
		metrics:      recorder,
		log:          log,
	}
}

// PlaceOrder stores the draft as an unpaid order. Any caller may place an
// order; the owner email is taken from the draft.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, draft *dto.PlaceOrderRequest) (string, error) {
	order := &model.Order{
		ID:         uuid.NewString(),
		Email:      draft.Email,
		Name:       draft.Name,
		Phone:      draft.Phone,
		Address:    draft.Address,
		PartID:     draft.PartID,
		PartName:   draft.PartName,
		Quantity:   draft.Quantity,
		TotalPrice: draft.TotalPrice,
		Items:      draft.Items,
		Paid:       false,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return "", fmt.Errorf("store order in db: %w", err)
	}

	s.metrics.RecordOrderPlaced()
	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("email", order.Email),
		zap.String("state", string(order.State())),
	)

	return order.ID, nil
}

// ConfirmPayment records the payment and then marks the order paid. The two
// writes are not atomic: the payment is always written first, so a failure
// in between leaves a payment without a paid order and never the reverse.
func (s *orderServiceImpl) ConfirmPayment(ctx context.Context, orderID string, details *dto.ConfirmPaymentRequest) (*model.Order, error) {
	if details.TransactionID == "" {
		return nil, model.ErrInvalidPayment
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.State() == model.OrderPaid {
		return nil, model.ErrAlreadyPaid
	}

	used, err := s.paymentRepo.CountByTransactionID(ctx, details.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("count payments by transaction: %w", err)
	}
	if used > 0 {
		return nil, model.ErrDuplicateTxn
	}

	payment := &model.Payment{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		Email:         details.Email,
		TransactionID: details.TransactionID,
		Amount:        details.Amount,
		CreatedAt:     time.Now(),
	}
	if payment.Email == "" {
		payment.Email = order.Email
	}
	if payment.Amount == 0 {
		payment.Amount = order.TotalPrice
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("store payment in db: %w", err)
	}

	log := s.log.With(
		zap.String("order_id", order.ID),
		zap.String("payment_id", payment.ID),
		zap.String("transaction_id", payment.TransactionID),
	)
	log.Debug("payment recorded", zap.String("state", string(model.OrderPaymentRecorded)))

	n, err := s.orderRepo.MarkPaid(ctx, order.ID, payment.TransactionID)
	if err != nil || n == 0 {
		inconsistent := &model.InconsistentError{PaymentID: payment.ID, OrderID: order.ID, Err: err}
		s.metrics.RecordInconsistentPayment()
		log.Error("order not marked paid after payment was recorded", zap.Error(inconsistent))
		return nil, inconsistent
	}

	s.metrics.RecordPaymentConfirmed()
	log.Info("order paid", zap.String("state", string(model.OrderPaid)))

	updated, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	return updated, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, email string) ([]*model.Order, error) {
	return s.orderRepo.FindByEmail(ctx, email)
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

// DeleteOrder removes the order without touching its payments. Under
// DeletePaidReject an order that is paid, or already has a payment recorded
// against it, stays.
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, orderID string) (int64, error) {
	if s.deletePolicy == DeletePaidReject {
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return 0, nil
			}
			return 0, fmt.Errorf("find order: %w", err)
		}
		if order.State() == model.OrderPaid {
			return 0, model.ErrPaidOrderDelete
		}

		payments, err := s.paymentRepo.FindByOrderID(ctx, orderID)
		if err != nil {
			return 0, fmt.Errorf("find order payments: %w", err)
		}
		if len(payments) > 0 {
			return 0, model.ErrPaidOrderDelete
		}
	}

	n, err := s.orderRepo.Delete(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete order: %w", err)
	}

	s.log.Info("order deleted", zap.String("order_id", orderID), zap.Int64("deleted", n))
	return n, nil
}
