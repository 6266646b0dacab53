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

type EventHandler struct {
	svc      service.EventService
	verifier *auth.Verifier
}

func NewEventHandler(svc service.EventService, verifier *auth.Verifier) *EventHandler {
	return &EventHandler{svc: svc, verifier: verifier}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/events", h.List)
	e.GET("/api/events/:id", h.Get)

	admin := []echo.MiddlewareFunc{h.verifier.RequireAuth, h.verifier.RequireAdmin}
	e.POST("/api/events", h.Create, admin...)
	e.PUT("/api/events/:id", h.Update, admin...)
	e.DELETE("/api/events/:id", h.Delete, admin...)
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(events))
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}
	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(event))
}

func (h *EventHandler) Create(c echo.Context) error {
	req, err := bindEventRequest(c)
	if err != nil {
		return err
	}

	event := eventFromRequest(req)
	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.OK(event))
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}
	req, err := bindEventRequest(c)
	if err != nil {
		return err
	}

	event := eventFromRequest(req)
	event.ID = id
	updated, err := h.svc.UpdateEvent(c.Request().Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.OK(updated))
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrConstraintViolation):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, dto.OKMessage(nil, "event deleted successfully"))
}

func parseEventID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}

func bindEventRequest(c echo.Context) (*dto.EventRequest, error) {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func eventFromRequest(req *dto.EventRequest) *models.Event {
	status := models.EventStatus(req.Status)
	if status == "" {
		status = models.EventOpen
	}
	eventType := req.Type
	if eventType == "" {
		eventType = "Workshop"
	}
	return &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        eventType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		Status:      status,
		ImageURL:    req.ImageURL,
	}
}
