package handler

import (
	"net/http"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	clientSecret, err := h.paymentService.CreateIntent(ctx, req.Price)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.PaymentIntentResponse{
		ClientSecret: clientSecret,
	})
}
