package repository

import (
	"context"
	"errors"
	"time"

	"fix-manufacture-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindByEmail(ctx context.Context, email string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	MarkPaid(ctx context.Context, orderID, transactionID string) (int64, error)
	Delete(ctx context.Context, orderID string) (int64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByEmail(ctx context.Context, email string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// MarkPaid moves an unpaid order to paid in a single-row update. It returns
// the number of rows changed; zero means the order is missing or already paid.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID, transactionID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"paid":           true,
			"transaction_id": transactionID,
			"updated_at":     time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *orderRepoImpl) Delete(ctx context.Context, orderID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&model.Order{})

	return result.RowsAffected, result.Error
}
