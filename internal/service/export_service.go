package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatPDF   ExportFormat = "pdf"
)

var ErrBadExportFormat = errors.New("invalid export format: must be excel or pdf")

// ExportFile is an opaque downloadable byte stream plus the metadata the
// handler needs to serve it.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ExportService interface {
	Export(ctx context.Context, filter repository.RegistrationFilter, format ExportFormat) (*ExportFile, error)
}

type exportService struct {
	registrations RegistrationService
}

func NewExportService(registrations RegistrationService) ExportService {
	return &exportService{registrations: registrations}
}

var exportHeader = []string{"Email", "Roll No", "Year", "Dept", "Mobile", "Event", "Event Start", "Status", "Registered At"}

func exportRow(r models.RegistrationWithEvent) []string {
	return []string{
		r.UserEmail,
		r.RollNo,
		r.Year,
		r.Dept,
		r.MobileNumber,
		r.EventTitle,
		r.EventStartTime.Format("2006-01-02 15:04"),
		string(r.Status),
		r.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (s *exportService) Export(ctx context.Context, filter repository.RegistrationFilter, format ExportFormat) (*ExportFile, error) {
	rows, err := s.registrations.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	date := time.Now().Format("2006-01-02")
	switch format {
	case FormatExcel:
		content, err := buildExcel(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("registrations_%s.xlsx", date),
		}, nil
	case FormatPDF:
		content, err := buildPDF(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("registrations_%s.pdf", date),
		}, nil
	default:
		return nil, ErrBadExportFormat
	}
}

func buildExcel(rows []models.RegistrationWithEvent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registrations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range exportRow(row) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPDF(rows []models.RegistrationWithEvent) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Event Registrations")
	pdf.Ln(12)

	widths := []float64{60, 25, 15, 20, 30, 50, 30, 22, 30}

	pdf.SetFont("Helvetica", "B", 8)
	for i, name := range exportHeader {
		pdf.CellFormat(widths[i], 7, name, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for i, value := range exportRow(row) {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
