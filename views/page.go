package views

import (
	"fmt"

	"tripview/models"
)

// Page is the fully resolved view of one itinerary. Building it never fails:
// missing optional data becomes placeholder text or an omitted section.
type Page struct {
	Title           string
	Summary         string
	RealFlight      *FlightSummary
	RealHotels      *HotelPanel
	SuggestedFlight SuggestedFlight
	Days            []DayView
}

type HotelPanel struct {
	Found int
	Cards []HotelCard
}

type SuggestedFlight struct {
	Airline       string
	FlightNumber  string
	Departure     string
	Arrival       string
	EstimatedCost string
}

// AirlineLabel is the airline with the flight number in parentheses, when known.
func (f SuggestedFlight) AirlineLabel() string {
	if f.FlightNumber == "" {
		return f.Airline
	}
	return fmt.Sprintf("%s (%s)", f.Airline, f.FlightNumber)
}

type DayView struct {
	Label      string
	Activities []ActivityView
}

type ActivityView struct {
	Icon        Icon
	Title       string
	TimeRange   string
	Description string
	Lodging     *models.LodgingInfo
	ImageURL    string
}

// PageBuilder resolves itineraries into pages.
type PageBuilder struct {
	ImageBaseURL string
}

// Build maps an itinerary and the optional live search results onto a Page.
// Only the first flight offer is shown and at most MaxHotelCards hotels.
func (b PageBuilder) Build(it models.TripItinerary, flights []models.FlightOffer, hotels []models.HotelOffer) Page {
	page := Page{
		Title:   it.Title,
		Summary: it.Summary,
		SuggestedFlight: SuggestedFlight{
			Airline:       it.SuggestedFlight.Airline,
			FlightNumber:  it.SuggestedFlight.FlightNumber,
			Departure:     it.SuggestedFlight.Departure,
			Arrival:       it.SuggestedFlight.Arrival,
			EstimatedCost: it.SuggestedFlight.EstimatedCost,
		},
	}

	if len(flights) > 0 {
		s := SummarizeFlight(flights[0])
		page.RealFlight = &s
	}

	if len(hotels) > 0 {
		shown := hotels
		if len(shown) > MaxHotelCards {
			shown = shown[:MaxHotelCards]
		}
		panel := &HotelPanel{Found: len(hotels), Cards: make([]HotelCard, 0, len(shown))}
		for _, h := range shown {
			panel.Cards = append(panel.Cards, SummarizeHotel(h))
		}
		page.RealHotels = panel
	}

	page.Days = make([]DayView, 0, len(it.Days))
	for _, day := range it.Days {
		dv := DayView{
			Label:      fmt.Sprintf("Day %d: %s", day.DayNumber, day.Theme),
			Activities: make([]ActivityView, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			dv.Activities = append(dv.Activities, ActivityView{
				Icon:        IconFor(a.Kind),
				Title:       a.Title,
				TimeRange:   a.StartTime + " - " + a.EndTime,
				Description: a.Description,
				Lodging:     a.LodgingSummary(),
				ImageURL:    ImageURL(b.ImageBaseURL, a.ImageQuery),
			})
		}
		page.Days = append(page.Days, dv)
	}

	return page
}
