package views

import (
	"fmt"
	"strings"
	"time"

	"tripview/models"
)

// Placeholders substituted for missing provider fields.
const (
	NotAvailable       = "N/A"
	MultipleAirlines   = "Multiple Airlines"
	NoRating           = "No rating"
	PriceOnRequest     = "Price on request"
	HotelNameMissing   = "Hotel Name Not Available"
	MaxHotelCards      = 6
	MaxAmenitiesShown  = 3
	segmentClockLayout = "3:04:05 PM"
)

// Provider timestamps are local times without an offset.
var segmentTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ─── Flight ───────────────────────────────────────────────────────────────────

// FlightSummary is a flight offer with every field resolved to display text.
type FlightSummary struct {
	Airline          string
	Price            string
	DepartureAirport string
	DepartureTime    string
	ArrivalAirport   string
	ArrivalTime      string
	Duration         string
	Aircraft         string
}

// SummarizeFlight resolves a loosely shaped flight offer into display text,
// substituting placeholders for anything absent.
func SummarizeFlight(offer models.FlightOffer) FlightSummary {
	s := FlightSummary{
		Airline:          MultipleAirlines,
		Price:            NotAvailable,
		DepartureAirport: NotAvailable,
		DepartureTime:    NotAvailable,
		ArrivalAirport:   NotAvailable,
		ArrivalTime:      NotAvailable,
		Duration:         NotAvailable,
		Aircraft:         NotAvailable,
	}

	if len(offer.ValidatingAirlineCodes) > 0 && offer.ValidatingAirlineCodes[0] != "" {
		s.Airline = offer.ValidatingAirlineCodes[0]
	}
	if p := formatPrice(offer.Price); p != "" {
		s.Price = p
	}

	seg := offer.FirstSegment()
	if seg != nil {
		if seg.Departure != nil {
			s.DepartureAirport = orDefault(seg.Departure.IataCode, NotAvailable)
			s.DepartureTime = orDefault(formatClock(seg.Departure.At), NotAvailable)
		}
		if seg.Arrival != nil {
			s.ArrivalAirport = orDefault(seg.Arrival.IataCode, NotAvailable)
			s.ArrivalTime = orDefault(formatClock(seg.Arrival.At), NotAvailable)
		}
		if seg.Aircraft != nil {
			s.Aircraft = orDefault(seg.Aircraft.Code.String(), NotAvailable)
		}
	}

	duration := ""
	if seg != nil {
		duration = seg.Duration
	}
	if duration == "" && len(offer.Itineraries) > 0 {
		duration = offer.Itineraries[0].Duration
	}
	s.Duration = orDefault(FormatDuration(duration), NotAvailable)

	return s
}

// FormatDuration turns a duration code such as PT5H30M into "5h 30m".
// Text that does not follow the pattern passes through with the same
// replacements applied.
func FormatDuration(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	code = strings.TrimPrefix(code, "PT")
	code = strings.Replace(code, "H", "h ", 1)
	code = strings.Replace(code, "M", "m", 1)
	return strings.TrimSpace(code)
}

func formatClock(at string) string {
	at = strings.TrimSpace(at)
	if at == "" {
		return ""
	}
	for _, layout := range segmentTimeLayouts {
		if t, err := time.Parse(layout, at); err == nil {
			return t.Format(segmentClockLayout)
		}
	}
	return at
}

// ─── Hotel ────────────────────────────────────────────────────────────────────

// HotelCard is a hotel offer with every field resolved to display text.
// Location is empty when the provider sent no address at all.
type HotelCard struct {
	Name          string
	Rating        string
	Price         string
	Location      string
	Amenities     []string
	MoreAmenities string
}

// SummarizeHotel resolves a loosely shaped hotel offer into display text.
func SummarizeHotel(offer models.HotelOffer) HotelCard {
	c := HotelCard{
		Name:   HotelNameMissing,
		Rating: NoRating,
		Price:  PriceOnRequest,
	}

	if len(offer.Offers) > 0 {
		if p := formatRoomPrice(offer.Offers[0].Price); p != "" {
			c.Price = p
		}
	}

	h := offer.Hotel
	if h == nil {
		return c
	}
	c.Name = orDefault(strings.TrimSpace(h.Name), HotelNameMissing)
	if r := h.Rating.String(); r != "" {
		c.Rating = r + "/5"
	}
	if h.Address != nil {
		c.Location = formatAddress(h.Address)
	}
	if n := len(h.Amenities); n > 0 {
		shown := h.Amenities
		if n > MaxAmenitiesShown {
			shown = shown[:MaxAmenitiesShown]
			c.MoreAmenities = fmt.Sprintf("+%d more", n-MaxAmenitiesShown)
		}
		c.Amenities = append([]string(nil), shown...)
	}
	return c
}

func formatAddress(a *models.HotelAddress) string {
	parts := make([]string, 0, 2)
	if len(a.Lines) > 0 && strings.TrimSpace(a.Lines[0]) != "" {
		parts = append(parts, strings.TrimSpace(a.Lines[0]))
	}
	if a.CityName != "" {
		parts = append(parts, a.CityName)
	}
	return strings.Join(parts, ", ")
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// formatPrice prefers the offer total and falls back to the grand total.
func formatPrice(p *models.OfferPrice) string {
	if p == nil {
		return ""
	}
	amount := p.Total.String()
	if amount == "" {
		amount = p.GrandTotal.String()
	}
	return joinAmount(amount, p.Currency)
}

// formatRoomPrice only considers the room total.
func formatRoomPrice(p *models.OfferPrice) string {
	if p == nil {
		return ""
	}
	return joinAmount(p.Total.String(), p.Currency)
}

func joinAmount(amount, currency string) string {
	if amount == "" {
		return ""
	}
	return strings.TrimSpace(amount + " " + currency)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
