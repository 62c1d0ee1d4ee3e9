package service

import (
	"context"
	"errors"

	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/repository"
)

type RoleResolver interface {
	// RoleOf returns model.RoleNone for an email with no user record.
	RoleOf(ctx context.Context, email string) (model.Role, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type roleResolverImpl struct {
	userRepo repository.UserRepository
}

func NewRoleResolver(userRepo repository.UserRepository) RoleResolver {
	return &roleResolverImpl{
		userRepo: userRepo,
	}
}

func (r *roleResolverImpl) RoleOf(ctx context.Context, email string) (model.Role, error) {
	user, err := r.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, err
	}

	if user.Role == model.RoleAdmin {
		return model.RoleAdmin, nil
	}
	return model.RoleUser, nil
}

func (r *roleResolverImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := r.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}
