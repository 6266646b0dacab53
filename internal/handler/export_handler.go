package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/techclub/club-portal/internal/auth"
	"github.com/techclub/club-portal/internal/service"
)

type ExportHandler struct {
	svc      service.ExportService
	verifier *auth.Verifier
}

func NewExportHandler(svc service.ExportService, verifier *auth.Verifier) *ExportHandler {
	return &ExportHandler{svc: svc, verifier: verifier}
}

func (h *ExportHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/admin/export", h.Export, h.verifier.RequireAuth, h.verifier.RequireAdmin)
}

// Export streams the filtered registrations as a downloadable file.
// ?format=excel|pdf, plus the same filters as /api/admin/registrations.
func (h *ExportHandler) Export(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	format := service.ExportFormat(c.QueryParam("format"))
	if format == "" {
		format = service.FormatExcel
	}

	file, err := h.svc.Export(c.Request().Context(), filter, format)
	if err != nil {
		if errors.Is(err, service.ErrBadExportFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}
