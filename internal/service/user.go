package service

import (
	"context"
	"fmt"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/repository"
	"fix-manufacture-api/internal/token"

	"go.uber.org/zap"
)

type UserService interface {
	// Upsert stores the profile keyed by email and issues a fresh access token.
	Upsert(ctx context.Context, email string, profile *dto.UserProfile) (*model.User, string, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, email string) (int64, error)
	List(ctx context.Context) ([]*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	roles    RoleResolver
	tokens   token.Service
	log      *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	roles RoleResolver,
	tokens token.Service,
	log *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		roles:    roles,
		tokens:   tokens,
		log:      log,
	}
}

func (s *userServiceImpl) Upsert(ctx context.Context, email string, profile *dto.UserProfile) (*model.User, string, error) {
	user := &model.User{
		Email: email,
		Role:  model.RoleUser,
	}

	var columns []string
	for _, f := range []struct {
		column string
		value  *string
		dst    *string
	}{
		{"name", profile.Name, &user.Name},
		{"phone", profile.Phone, &user.Phone},
		{"address", profile.Address, &user.Address},
		{"image", profile.Image, &user.Image},
	} {
		if f.value != nil {
			*f.dst = *f.value
			columns = append(columns, f.column)
		}
	}

	if err := s.userRepo.UpsertProfile(ctx, user, columns); err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}

	stored, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("reload user: %w", err)
	}

	accessToken, err := s.tokens.Issue(email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Debug("user upserted", zap.String("email", email))
	return stored, accessToken, nil
}

func (s *userServiceImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.roles.IsAdmin(ctx, email)
}

func (s *userServiceImpl) Promote(ctx context.Context, email string) (int64, error) {
	n, err := s.userRepo.SetRole(ctx, email, model.RoleAdmin)
	if err != nil {
		return 0, fmt.Errorf("promote user: %w", err)
	}

	s.log.Info("user promoted to admin", zap.String("email", email), zap.Int64("modified", n))
	return n, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.FindAll(ctx)
}
