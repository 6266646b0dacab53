package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/techclub/club-portal/internal/auth"
	"github.com/techclub/club-portal/internal/dto"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/techclub/club-portal/internal/service"
)

type RegistrationHandler struct {
	svc      service.RegistrationService
	verifier *auth.Verifier
}

func NewRegistrationHandler(svc service.RegistrationService, verifier *auth.Verifier) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, verifier: verifier}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/registrations", h.Create, h.verifier.RequireAuth)
	e.GET("/api/registrations", h.ListMine, h.verifier.RequireAuth)
	e.DELETE("/api/registrations/:id", h.Cancel, h.verifier.RequireAuth)
	e.GET("/api/admin/registrations", h.ListAll, h.verifier.RequireAuth, h.verifier.RequireAdmin)
}

func (h *RegistrationHandler) Create(c echo.Context) error {
	var req dto.CreateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity := auth.IdentityFrom(c)
	if req.UserID != "" && req.UserID != identity.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "userId does not match the authenticated caller")
	}

	reg, err := h.svc.Register(c.Request().Context(), req.EventID, identity.UserID, identity.Email, service.RegistrationDetails{
		Year:         req.Year,
		Dept:         req.Dept,
		RollNo:       req.RollNo,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrEventFull):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}

	return c.JSON(http.StatusCreated, dto.OK(reg))
}

func (h *RegistrationHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	identity := auth.IdentityFrom(c)
	reg, err := h.svc.Cancel(c.Request().Context(), uint(id), identity.UserID, identity.IsAdmin())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}

	return c.JSON(http.StatusOK, dto.OK(reg))
}

func (h *RegistrationHandler) ListMine(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	// ?userId= is honored only when it names the caller; admins may read any.
	userID := identity.UserID
	if q := c.QueryParam("userId"); q != "" && q != identity.UserID {
		if !identity.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "cannot list another user's registrations")
		}
		userID = q
	}

	rows, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(rows))
}

func (h *RegistrationHandler) ListAll(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.svc.ListAll(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(rows))
}

func filterFromQuery(c echo.Context) (repository.RegistrationFilter, error) {
	filter := repository.RegistrationFilter{
		Year:   c.QueryParam("year"),
		Dept:   c.QueryParam("dept"),
		Status: models.RegistrationStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("eventId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
		}
		filter.EventID = uint(id)
	}
	return filter, nil
}
