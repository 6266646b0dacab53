package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fieldMessage(err))
	}
	return nil
}

func fieldMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid request"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	case "email":
		return "invalid email address: " + fe.Field()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gtfield":
		return fe.Field() + " must be after " + fe.Param()
	default:
		return "invalid value for field: " + fe.Field()
	}
}
