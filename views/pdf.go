package views

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFOptions controls the export header. A zero GeneratedAt omits the line.
type PDFOptions struct {
	TravelerName string
	GeneratedAt  time.Time
}

// RenderPDF exports a page as an A4 document and returns the raw bytes.
// Activity images are not embedded.
func RenderPDF(page Page, opts PDFOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.3)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8,
			fmt.Sprintf("Generated by TripMind AI Travel Planner - Not a booking confirmation - Page %d", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr(page.Title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(40, 40, 40)
	if page.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(170, 5, tr(page.Summary), "", "L", false)
		pdf.Ln(4)
	}

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(125, 7, tr(value), "", "L", false)
	}

	// ── Traveler ──────────────────────────────────────────────
	if opts.TravelerName != "" || !opts.GeneratedAt.IsZero() {
		sectionHeader("Traveler Information")
		if opts.TravelerName != "" {
			row("Name", opts.TravelerName)
		}
		if !opts.GeneratedAt.IsZero() {
			row("Generated", opts.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
		}
		pdf.Ln(4)
	}

	// ── Live Flight ───────────────────────────────────────────
	if f := page.RealFlight; f != nil {
		sectionHeader("Real Flight Available")
		row("Airline", f.Airline)
		row("Price", f.Price)
		row("Departure", f.DepartureAirport+" at "+f.DepartureTime)
		row("Arrival", f.ArrivalAirport+" at "+f.ArrivalTime)
		row("Duration", f.Duration)
		row("Aircraft", f.Aircraft)
		pdf.Ln(4)
	}

	// ── Live Hotels ───────────────────────────────────────────
	if hp := page.RealHotels; hp != nil {
		sectionHeader(fmt.Sprintf("Available Hotels (%d found)", hp.Found))
		for _, h := range hp.Cards {
			value := h.Rating + " - " + h.Price
			if h.Location != "" {
				value += " - " + h.Location
			}
			row(h.Name, value)
		}
		pdf.Ln(4)
	}

	// ── Suggested Flight ──────────────────────────────────────
	sectionHeader("AI Suggested Flight")
	row("Airline", page.SuggestedFlight.AirlineLabel())
	row("Estimated Cost", page.SuggestedFlight.EstimatedCost)
	row("Departure", page.SuggestedFlight.Departure)
	row("Arrival", page.SuggestedFlight.Arrival)
	pdf.Ln(4)

	// ── Days ──────────────────────────────────────────────────
	for _, day := range page.Days {
		sectionHeader(day.Label)
		for _, a := range day.Activities {
			value := a.Title
			if a.Description != "" {
				value += "\n" + a.Description
			}
			if a.Lodging != nil {
				value += fmt.Sprintf("\n%s - %s", a.Lodging.HotelName, a.Lodging.EstimatedCost)
			}
			row(a.TimeRange, value)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
