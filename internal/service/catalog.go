package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/repository"

	"github.com/google/uuid"
)

// CatalogService covers parts and reviews. There are no business rules here
// beyond what the repositories do.
type CatalogService interface {
	ListParts(ctx context.Context) ([]*model.Part, error)
	GetPart(ctx context.Context, partID string) (*model.Part, error)
	CreatePart(ctx context.Context, req *dto.CreatePartRequest) (string, error)
	UpdateQuantity(ctx context.Context, partID string, quantity int) (bool, error)
	ListReviews(ctx context.Context) ([]*model.Review, error)
	AddReview(ctx context.Context, req *dto.CreateReviewRequest) (string, error)
}

type catalogServiceImpl struct {
	partRepo   repository.PartRepository
	reviewRepo repository.ReviewRepository
}

func NewCatalogService(
	partRepo repository.PartRepository,
	reviewRepo repository.ReviewRepository,
) CatalogService {
	return &catalogServiceImpl{
		partRepo:   partRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *catalogServiceImpl) ListParts(ctx context.Context) ([]*model.Part, error) {
	return s.partRepo.FindAll(ctx)
}

func (s *catalogServiceImpl) GetPart(ctx context.Context, partID string) (*model.Part, error) {
	return s.partRepo.FindByID(ctx, partID)
}

func (s *catalogServiceImpl) CreatePart(ctx context.Context, req *dto.CreatePartRequest) (string, error) {
	part := &model.Part{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		Image:             req.Image,
		Price:             req.Price,
		MinimumQuantity:   req.MinimumQuantity,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return "", fmt.Errorf("create part: %w", err)
	}

	return part.ID, nil
}

// UpdateQuantity overwrites the available quantity; it is not a delta. It
// reports whether the part was unknown and got inserted instead.
func (s *catalogServiceImpl) UpdateQuantity(ctx context.Context, partID string, quantity int) (bool, error) {
	_, err := s.partRepo.FindByID(ctx, partID)
	inserted := errors.Is(err, model.ErrNotFound)
	if err != nil && !inserted {
		return false, fmt.Errorf("find part: %w", err)
	}

	if err := s.partRepo.UpsertQuantity(ctx, partID, quantity); err != nil {
		return false, fmt.Errorf("update quantity: %w", err)
	}

	return inserted, nil
}

func (s *catalogServiceImpl) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return s.reviewRepo.FindAll(ctx)
}

func (s *catalogServiceImpl) AddReview(ctx context.Context, req *dto.CreateReviewRequest) (string, error) {
	review := &model.Review{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Image:     req.Image,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return "", fmt.Errorf("create review: %w", err)
	}

	return review.ID, nil
}
