package repository

import (
	"context"
	"errors"
	"time"

	"fix-manufacture-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	UpsertProfile(ctx context.Context, user *model.User, columns []string) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, email string, role model.Role) (int64, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

var profileColumns = map[string]bool{
	"name":    true,
	"phone":   true,
	"address": true,
	"image":   true,
}

// UpsertProfile inserts the user, or for a known email updates only the given
// profile columns. Anything else, the role included, is left as stored.
func (r *userRepoImpl) UpsertProfile(ctx context.Context, user *model.User, columns []string) error {
	updates := []string{"updated_at"}
	for _, column := range columns {
		if profileColumns[column] {
			updates = append(updates, column)
		}
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(user).Error
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Order("email").
		Find(&users).
		Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

// SetRole returns the number of users updated; zero when the email is unknown.
func (r *userRepoImpl) SetRole(ctx context.Context, email string, role model.Role) (int64, error) {
	result := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}
