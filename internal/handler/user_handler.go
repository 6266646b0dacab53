package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/techclub/club-portal/internal/auth"
	"github.com/techclub/club-portal/internal/dto"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/service"
)

type UserHandler struct {
	svc      service.UserService
	verifier *auth.Verifier
}

func NewUserHandler(svc service.UserService, verifier *auth.Verifier) *UserHandler {
	return &UserHandler{svc: svc, verifier: verifier}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/users/link", h.Link, h.verifier.RequireAuth)

	admin := []echo.MiddlewareFunc{h.verifier.RequireAuth, h.verifier.RequireAdmin}
	e.GET("/api/admin/users", h.List, admin...)
	e.POST("/api/admin/members", h.Provision, admin...)
	e.PUT("/api/users/:id", h.Update, admin...)
	e.DELETE("/api/users/:id", h.Delete, admin...)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(users))
}

func (h *UserHandler) Provision(c echo.Context) error {
	var req dto.ProvisionMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.Role(req.Role),
		Year:         req.Year,
		Dept:         req.Dept,
		Designation:  req.Designation,
		MobileNumber: req.MobileNumber,
	}
	if err := h.svc.ProvisionMember(c.Request().Context(), user); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, dto.OKMessage(user,
		"member added successfully; the account will be linked by email on first sign-in"))
}

func (h *UserHandler) Update(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{
		UserID:       c.Param("id"),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Year:         req.Year,
		Dept:         req.Dept,
		RollNo:       req.RollNo,
		Designation:  req.Designation,
		MobileNumber: req.MobileNumber,
	}
	updated, err := h.svc.UpdateUser(c.Request().Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, dto.OK(updated))
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrHasRegistrations):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, dto.OKMessage(nil, "user deleted successfully"))
}

// Link reconciles the caller's verified identity with the member table on
// first sign-in.
func (h *UserHandler) Link(c echo.Context) error {
	var req dto.LinkIdentityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	identity := auth.IdentityFrom(c)
	user, err := h.svc.LinkIdentity(c.Request().Context(), identity.UserID, identity.Email, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(user))
}
