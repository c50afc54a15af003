package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReportContent is the structured input for a service-report document.
type ReportContent struct {
	TenantName        string
	ClientName        string
	VehicleLabel      string // e.g. "2019 Toyota Corolla"
	Condition         string
	ServicesPerformed []string
	TotalCost         float64
	GeneratedAt       time.Time
}

// ReportService renders service reports as PDF bytes. The layout engine is
// fully delegated to the PDF library; this service only supplies content.
type ReportService interface {
	BuildServiceReport(content ReportContent) ([]byte, error)
}

// PDFReportService implements ReportService with fpdf.
type PDFReportService struct{}

// NewPDFReportService creates a new PDF report service.
func NewPDFReportService() *PDFReportService {
	return &PDFReportService{}
}

// BuildServiceReport renders a one-page service report.
func (s *PDFReportService) BuildServiceReport(content ReportContent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, content.TenantName)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Service Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", content.GeneratedAt.Format("January 2, 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 6, fmt.Sprintf("Client: %s", content.ClientName))
	pdf.Ln(7)
	pdf.Cell(0, 6, fmt.Sprintf("Vehicle: %s", content.VehicleLabel))
	pdf.Ln(7)
	if content.Condition != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Assessed condition: %s", content.Condition))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Services performed")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, service := range content.ServicesPerformed {
		pdf.Cell(0, 6, "  - "+service)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f", content.TotalCost))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render service report: %w", err)
	}

	return buf.Bytes(), nil
}
