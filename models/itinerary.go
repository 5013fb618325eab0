package models

// ─── AI Itinerary ─────────────────────────────────────────────────────────────

// TripItinerary is the trip plan produced by the upstream generator.
// Field names on the wire match the generator's JSON output.
type TripItinerary struct {
	Title           string           `json:"tripTitle"`
	Summary         string           `json:"tripSummary"`
	SuggestedFlight FlightSuggestion `json:"flightDetails"`
	Days            []DayPlan        `json:"days"`
}

// FlightSuggestion holds display strings only; nothing here is parsed.
type FlightSuggestion struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber,omitempty"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	EstimatedCost string `json:"estimatedCost"`
}

type DayPlan struct {
	DayNumber  int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

type ActivityKind string

const (
	KindTransfer ActivityKind = "transfer"
	KindFood     ActivityKind = "food"
	KindActivity ActivityKind = "activity"
	KindLodging  ActivityKind = "lodging"
	KindFreeTime ActivityKind = "free-time"
)

type Activity struct {
	Title       string       `json:"title"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	Description string       `json:"description,omitempty"`
	Kind        ActivityKind `json:"type"`
	ImageQuery  string       `json:"imageQuery,omitempty"`
	Lodging     *LodgingInfo `json:"lodgingDetails,omitempty"`
}

type LodgingInfo struct {
	HotelName     string `json:"hotelName"`
	EstimatedCost string `json:"estimatedCost"`
}

// LodgingSummary returns the lodging details to display, or nil. Details on a
// non-lodging activity are ignored.
func (a Activity) LodgingSummary() *LodgingInfo {
	if a.Kind != KindLodging || a.Lodging == nil {
		return nil
	}
	return a.Lodging
}
