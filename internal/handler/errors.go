package handler

import (
	"errors"
	"net/http"

	"fix-manufacture-api/internal/model"

	"github.com/labstack/echo/v4"
)

// httpError maps domain errors to their HTTP status. Anything unknown is
// returned as is and ends up as a 500 from echo's error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, model.ErrInconsistent):
		return echo.NewHTTPError(http.StatusInternalServerError, model.ErrInconsistent.Error()).SetInternal(err)
	case errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidPayment), errors.Is(err, model.ErrInvalidAmount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrAlreadyPaid), errors.Is(err, model.ErrDuplicateTxn), errors.Is(err, model.ErrPaidOrderDelete):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
