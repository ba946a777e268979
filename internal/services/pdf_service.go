package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripai-backend/internal/models"
	"tripai-backend/internal/utils"
)

// PDFService renders destination packages as downloadable PDF brochures.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// RenderDestination builds a one-package brochure with pricing, inclusions
// and the day-by-day itinerary.
func (s *PDFService) RenderDestination(d *models.Destination) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Name, true)
	pdf.AddPage()
	// Core fonts are cp1252; translate so the rupee symbol and other
	// non-Latin-1 characters degrade gracefully.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	sectionHeader := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(13, 138, 188)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	bullet := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(6, 6, "-", "", 0, "R", false, 0, "")
		pdf.MultiCell(0, 6, text, "", "L", false)
	}

	// Title block
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(d.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s  |  %s  |  Rating %.1f (%d reviews)", d.Country, d.Type, d.Rating, d.ReviewsCount), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr(fmt.Sprintf("Package price: %s per person", d.PriceDisplay)), "", 1, "L", false, 0, "")

	if d.Description != "" {
		sectionHeader("About This Trip")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(d.Description), "", "L", false)
	}

	if len(d.Amenities) > 0 {
		sectionHeader("Amenities")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, strings.Join(d.Amenities, ", "), "", "L", false)
	}

	if len(d.Inclusions) > 0 {
		sectionHeader("Inclusions")
		for _, item := range d.Inclusions {
			bullet(item)
		}
	}
	if len(d.Exclusions) > 0 {
		sectionHeader("Exclusions")
		for _, item := range d.Exclusions {
			bullet(item)
		}
	}

	if len(d.Itinerary) > 0 {
		sectionHeader("Day-by-Day Itinerary")
		for _, day := range d.Itinerary {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, fmt.Sprintf("Day %d: %s", day.Day, day.Title), "", 1, "L", false, 0, "")
			for _, activity := range day.Activities {
				bullet(activity)
			}
			if len(day.Meals) > 0 {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.CellFormat(0, 6, "Meals: "+strings.Join(day.Meals, ", "), "", 1, "L", false, 0, "")
			}
			pdf.Ln(2)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	footer := fmt.Sprintf("Generated by TripAI on %s. Prices are indicative and subject to availability.", utils.FormatTimestamp(time.Now()))
	pdf.CellFormat(0, 6, footer, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
