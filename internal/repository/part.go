package repository

import (
	"context"
	"errors"

	"fix-manufacture-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartRepository interface {
	FindAll(ctx context.Context) ([]*model.Part, error)
	FindByID(ctx context.Context, partID string) (*model.Part, error)
	Create(ctx context.Context, part *model.Part) error
	UpsertQuantity(ctx context.Context, partID string, quantity int) error
}

type partRepoImpl struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepoImpl{
		db: db,
	}
}

func (r *partRepoImpl) FindAll(ctx context.Context) ([]*model.Part, error) {
	var parts []*model.Part
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&parts).
		Error

	if err != nil {
		return nil, err
	}

	return parts, nil
}

func (r *partRepoImpl) FindByID(ctx context.Context, partID string) (*model.Part, error) {
	var part model.Part
	err := r.db.WithContext(ctx).
		Where("id = ?", partID).
		First(&part).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return &part, nil
}

func (r *partRepoImpl) Create(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// UpsertQuantity overwrites available_quantity, inserting a bare part when the
// id is unknown. Concurrent writers race; the last write wins.
func (r *partRepoImpl) UpsertQuantity(ctx context.Context, partID string, quantity int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available_quantity"}),
	}).Create(&model.Part{
		ID:                partID,
		AvailableQuantity: quantity,
	}).Error
}
