package repository

import (
	"context"

	"fix-manufacture-api/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	CountByTransactionID(ctx context.Context, transactionID string) (int64, error)
	FindByOrderID(ctx context.Context, orderID string) ([]*model.Payment, error)
}

type paymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepositoryImpl{
		db: db,
	}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepositoryImpl) CountByTransactionID(ctx context.Context, transactionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error

	return count, err
}

func (r *paymentRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
