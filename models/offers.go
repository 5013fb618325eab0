package models

import (
	"bytes"
	"encoding/json"
)

// ─── Amadeus-shaped search results ────────────────────────────────────────────
//
// These mirror the provider's flight-offers and hotel-offers payloads, but every
// nested object is optional. Nothing beyond the top-level array is assumed: a
// field with the wrong shape decodes as if it were absent.

type FlightOffer struct {
	ValidatingAirlineCodes []string         `json:"validatingAirlineCodes,omitempty"`
	Price                  *OfferPrice      `json:"price,omitempty"`
	Itineraries            []OfferItinerary `json:"itineraries,omitempty"`
}

func (f *FlightOffer) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*f = FlightOffer{ValidatingAirlineCodes: fields.strings("validatingAirlineCodes")}
	decodeField(fields, "price", &f.Price)
	decodeField(fields, "itineraries", &f.Itineraries)
	return nil
}

type OfferPrice struct {
	Total      LooseString `json:"total,omitempty"`
	GrandTotal LooseString `json:"grandTotal,omitempty"`
	Currency   string      `json:"currency,omitempty"`
}

func (p *OfferPrice) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*p = OfferPrice{}
	decodeField(fields, "total", &p.Total)
	decodeField(fields, "grandTotal", &p.GrandTotal)
	decodeField(fields, "currency", &p.Currency)
	return nil
}

type OfferItinerary struct {
	Duration string         `json:"duration,omitempty"`
	Segments []OfferSegment `json:"segments,omitempty"`
}

func (it *OfferItinerary) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*it = OfferItinerary{}
	decodeField(fields, "duration", &it.Duration)
	decodeField(fields, "segments", &it.Segments)
	return nil
}

type OfferSegment struct {
	Departure   *SegmentEndpoint `json:"departure,omitempty"`
	Arrival     *SegmentEndpoint `json:"arrival,omitempty"`
	CarrierCode string           `json:"carrierCode,omitempty"`
	Number      LooseString      `json:"number,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Aircraft    *Aircraft        `json:"aircraft,omitempty"`
}

func (s *OfferSegment) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*s = OfferSegment{}
	decodeField(fields, "departure", &s.Departure)
	decodeField(fields, "arrival", &s.Arrival)
	decodeField(fields, "carrierCode", &s.CarrierCode)
	decodeField(fields, "number", &s.Number)
	decodeField(fields, "duration", &s.Duration)
	decodeField(fields, "aircraft", &s.Aircraft)
	return nil
}

type SegmentEndpoint struct {
	IataCode string `json:"iataCode,omitempty"`
	At       string `json:"at,omitempty"`
}

func (e *SegmentEndpoint) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*e = SegmentEndpoint{}
	decodeField(fields, "iataCode", &e.IataCode)
	decodeField(fields, "at", &e.At)
	return nil
}

type Aircraft struct {
	Code LooseString `json:"code,omitempty"`
}

func (a *Aircraft) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*a = Aircraft{}
	decodeField(fields, "code", &a.Code)
	return nil
}

// FirstSegment returns the first segment of the first itinerary, if any.
func (f FlightOffer) FirstSegment() *OfferSegment {
	if len(f.Itineraries) == 0 || len(f.Itineraries[0].Segments) == 0 {
		return nil
	}
	return &f.Itineraries[0].Segments[0]
}

type HotelOffer struct {
	Hotel  *HotelInfo  `json:"hotel,omitempty"`
	Offers []RoomOffer `json:"offers,omitempty"`
}

func (h *HotelOffer) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*h = HotelOffer{}
	decodeField(fields, "hotel", &h.Hotel)
	decodeField(fields, "offers", &h.Offers)
	return nil
}

type HotelInfo struct {
	HotelID   string        `json:"hotelId,omitempty"`
	Name      string        `json:"name,omitempty"`
	Rating    LooseString   `json:"rating,omitempty"`
	Address   *HotelAddress `json:"address,omitempty"`
	Amenities []string      `json:"amenities,omitempty"`
}

func (h *HotelInfo) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*h = HotelInfo{Amenities: fields.strings("amenities")}
	decodeField(fields, "hotelId", &h.HotelID)
	decodeField(fields, "name", &h.Name)
	// a bare 0 or false rating means "unrated", not "0/5"
	if !isFalsyLiteral(fields["rating"]) {
		decodeField(fields, "rating", &h.Rating)
	}
	decodeField(fields, "address", &h.Address)
	return nil
}

type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

func (a *HotelAddress) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*a = HotelAddress{Lines: fields.strings("lines")}
	decodeField(fields, "cityName", &a.CityName)
	decodeField(fields, "countryCode", &a.CountryCode)
	return nil
}

type RoomOffer struct {
	Price *OfferPrice `json:"price,omitempty"`
}

func (r *RoomOffer) UnmarshalJSON(data []byte) error {
	fields := objectFields(data)
	*r = RoomOffer{}
	decodeField(fields, "price", &r.Price)
	return nil
}

// ─── Lenient decoding ─────────────────────────────────────────────────────────

// rawFields holds the members of a JSON object. It is nil when the payload was
// not an object, so every lookup misses.
type rawFields map[string]json.RawMessage

func objectFields(data []byte) rawFields {
	var fields rawFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}

// decodeField stores the named member in dst. A missing member or one of the
// wrong shape leaves dst untouched.
func decodeField[T any](fields rawFields, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// strings decodes a list of scalars. Anything but an array yields nil, and
// elements that are not scalars are dropped.
func (f rawFields) strings(name string) []string {
	var items []LooseString
	decodeField(f, name, &items)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item.String())
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFalsyLiteral(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("false")) {
		return true
	}
	var n json.Number
	if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &n) != nil {
		return false
	}
	f, err := n.Float64()
	return err == nil && f == 0
}

// ─── LooseString ──────────────────────────────────────────────────────────────

// LooseString is a scalar the provider sends either quoted or bare
// ("rating": "4" vs "rating": 4). Null, objects and arrays decode to the
// empty string.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
	case 't', 'f':
		*s = LooseString(data)
	case 'n', '{', '[':
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = LooseString(n.String())
	}
	return nil
}

func (s LooseString) String() string { return string(s) }
