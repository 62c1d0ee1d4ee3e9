package handler

import (
	"net/http"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpsertUser is the login step: it stores the profile and hands back a token.
func (h *UserHandler) UpsertUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UserProfile
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, accessToken, err := h.userService.Upsert(ctx, c.Param("email"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.UpsertUserResponse{
		Result:      user,
		AccessToken: accessToken,
	})
}

func (h *UserHandler) IsAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	admin, err := h.userService.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.AdminResponse{
		Admin: admin,
	})
}

func (h *UserHandler) Promote(c echo.Context) error {
	ctx := c.Request().Context()

	modified, err := h.userService.Promote(ctx, c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  modified,
		ModifiedCount: modified,
	})
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}
