package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prasetyow/event-registration-service/internal/dto"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	// Internal details never leave the process.
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}

	_ = c.JSON(code, dto.Error(msg))
}
