package handler

import (
	"errors"
	"net/http"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/model"
	"fix-manufacture-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListParts(c echo.Context) error {
	ctx := c.Request().Context()

	parts, err := h.catalogService.ListParts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, parts)
}

// GetPart answers null for an unknown id.
func (h *CatalogHandler) GetPart(c echo.Context) error {
	ctx := c.Request().Context()

	part, err := h.catalogService.GetPart(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}

	return c.JSON(http.StatusOK, part)
}

func (h *CatalogHandler) CreatePart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	partID, err := h.catalogService.CreatePart(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.InsertResult{
		Acknowledged: true,
		InsertedID:   partID,
	})
}

func (h *CatalogHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}

	partID := c.Param("id")
	inserted, err := h.catalogService.UpdateQuantity(ctx, partID, *req.Quantity)
	if err != nil {
		return err
	}

	if inserted {
		return c.JSON(http.StatusOK, &dto.UpdateResult{
			Acknowledged:  true,
			UpsertedCount: 1,
			UpsertedID:    partID,
		})
	}
	return c.JSON(http.StatusOK, &dto.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  1,
		ModifiedCount: 1,
	})
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.catalogService.ListReviews(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *CatalogHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	reviewID, err := h.catalogService.AddReview(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.InsertResult{
		Acknowledged: true,
		InsertedID:   reviewID,
	})
}
