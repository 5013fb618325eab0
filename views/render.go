package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"tripview/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns itineraries into HTML documents. It holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	builder PageBuilder
	tmpl    *template.Template
}

// NewRenderer parses the embedded templates. imageBaseURL may be empty.
func NewRenderer(imageBaseURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		builder: PageBuilder{ImageBaseURL: imageBaseURL},
		tmpl:    tmpl,
	}, nil
}

// Page builds the view model without rendering it.
func (r *Renderer) Page(it models.TripItinerary, flights []models.FlightOffer, hotels []models.HotelOffer) Page {
	return r.builder.Build(it, flights, hotels)
}

// Render writes the itinerary page. The only errors come from the writer.
func (r *Renderer) Render(w io.Writer, it models.TripItinerary, flights []models.FlightOffer, hotels []models.HotelOffer) error {
	return r.RenderPage(w, r.Page(it, flights, hotels))
}

// RenderPage writes an already built page. Output is buffered so a failed
// execution never leaves a half-written document.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "itinerary", page); err != nil {
		return fmt.Errorf("render itinerary: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

type loadingPage struct {
	StreamURL string
	Messages  []string
}

// RenderLoading writes the loading view with the messages revealed so far.
// The page subscribes to streamURL for the rest.
func (r *Renderer) RenderLoading(w io.Writer, streamURL string, revealed []string) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "loading", loadingPage{StreamURL: streamURL, Messages: revealed}); err != nil {
		return fmt.Errorf("render loading: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
