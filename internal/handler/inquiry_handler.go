package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/techclub/club-portal/internal/auth"
	"github.com/techclub/club-portal/internal/dto"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/service"
)

type InquiryHandler struct {
	svc      service.InquiryService
	verifier *auth.Verifier
}

func NewInquiryHandler(svc service.InquiryService, verifier *auth.Verifier) *InquiryHandler {
	return &InquiryHandler{svc: svc, verifier: verifier}
}

func (h *InquiryHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/contact", h.Submit)

	admin := []echo.MiddlewareFunc{h.verifier.RequireAuth, h.verifier.RequireAdmin}
	e.GET("/api/admin/inquiries", h.List, admin...)
	e.PUT("/api/admin/inquiries/:id", h.UpdateStatus, admin...)
	e.DELETE("/api/admin/inquiries/:id", h.Delete, admin...)
}

func (h *InquiryHandler) Submit(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format, please try again")
	}

	_, err := h.svc.Submit(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryFieldsRequired),
			errors.Is(err, service.ErrInquiryBadEmail),
			errors.Is(err, service.ErrInquiryShortMessage):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, dto.OKMessage(nil, "contact form submitted successfully"))
}

func (h *InquiryHandler) List(c echo.Context) error {
	inquiries, err := h.svc.ListInquiries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(inquiries))
}

func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	id, err := parseInquiryID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	inquiry, err := h.svc.UpdateStatus(c.Request().Context(), id, models.InquiryStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryBadStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInquiryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, dto.OK(inquiry))
}

func (h *InquiryHandler) Delete(c echo.Context) error {
	id, err := parseInquiryID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteInquiry(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OKMessage(nil, "inquiry deleted successfully"))
}

func parseInquiryID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid inquiry id")
	}
	return uint(id), nil
}
