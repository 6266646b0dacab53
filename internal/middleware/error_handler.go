package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/techclub/club-portal/internal/dto"
)

// ErrorHandler renders every error as the standard failure envelope.
// Unexpected errors are logged server-side and replaced with a generic
// message so no store internals leak to the caller.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).WithError(err).Error("request failed")
	}

	_ = c.JSON(code, dto.Fail(msg))
}
