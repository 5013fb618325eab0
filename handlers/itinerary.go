package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripview/database"
	"tripview/models"
	"tripview/views"
)

type SaveResponse struct {
	ItineraryID string `json:"itinerary_id"`
	ViewURL     string `json:"view_url"`
	PDFURL      string `json:"pdf_url"`
}

// SaveHandler stores a render request so it can be viewed or downloaded later.
func (h *Handler) SaveHandler(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	v, err := newItineraryView(req)
	if err != nil {
		log.Printf("❌ Failed to encode itinerary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode itinerary"})
		return
	}

	if err := h.store.SaveView(c.Request.Context(), v); err != nil {
		log.Printf("❌ Failed to save itinerary view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save itinerary"})
		return
	}

	log.Printf("✅ Itinerary view %s saved (%d days)", v.ID, len(req.Itinerary.Days))
	c.JSON(http.StatusCreated, SaveResponse{
		ItineraryID: v.ID,
		ViewURL:     "/itineraries/" + v.ID,
		PDFURL:      "/api/download/" + v.ID,
	})
}

// ViewHandler renders a stored itinerary as HTML.
func (h *Handler) ViewHandler(c *gin.Context) {
	page, _, ok := h.loadPage(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, page); err != nil {
		log.Printf("❌ Render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render itinerary"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// DownloadHandler renders a stored itinerary as a PDF attachment.
func (h *Handler) DownloadHandler(c *gin.Context) {
	page, v, ok := h.loadPage(c)
	if !ok {
		return
	}

	pdfBytes, err := views.RenderPDF(page, views.PDFOptions{
		TravelerName: v.TravelerName,
		GeneratedAt:  h.now(),
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tripmind-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// loadPage fetches and decodes a stored view. On failure it has already
// written the error response.
func (h *Handler) loadPage(c *gin.Context) (views.Page, *database.ItineraryView, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing itinerary ID"})
		return views.Page{}, nil, false
	}

	v, err := h.store.GetView(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		return views.Page{}, nil, false
	}
	if err != nil {
		log.Printf("❌ Failed to load itinerary view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load itinerary"})
		return views.Page{}, nil, false
	}

	req, err := decodeItineraryView(v)
	if err != nil {
		log.Printf("❌ Stored itinerary %s is unreadable: %v", v.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored itinerary"})
		return views.Page{}, nil, false
	}

	return h.renderer.Page(req.Itinerary, req.RealFlights, req.RealHotels), v, true
}

func newItineraryView(req RenderRequest) (*database.ItineraryView, error) {
	itineraryJSON, err := json.Marshal(req.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	flights := req.RealFlights
	if flights == nil {
		flights = []models.FlightOffer{}
	}
	flightsJSON, err := json.Marshal(flights)
	if err != nil {
		return nil, fmt.Errorf("encode flights: %w", err)
	}
	hotels := req.RealHotels
	if hotels == nil {
		hotels = []models.HotelOffer{}
	}
	hotelsJSON, err := json.Marshal(hotels)
	if err != nil {
		return nil, fmt.Errorf("encode hotels: %w", err)
	}

	return &database.ItineraryView{
		ID:            uuid.New().String(),
		Title:         req.Itinerary.Title,
		ItineraryJSON: string(itineraryJSON),
		FlightsJSON:   string(flightsJSON),
		HotelsJSON:    string(hotelsJSON),
		TravelerName:  req.TravelerName,
	}, nil
}

func decodeItineraryView(v *database.ItineraryView) (RenderRequest, error) {
	req := RenderRequest{TravelerName: v.TravelerName}
	if err := json.Unmarshal([]byte(v.ItineraryJSON), &req.Itinerary); err != nil {
		return req, fmt.Errorf("decode itinerary: %w", err)
	}
	if v.FlightsJSON != "" {
		if err := json.Unmarshal([]byte(v.FlightsJSON), &req.RealFlights); err != nil {
			return req, fmt.Errorf("decode flights: %w", err)
		}
	}
	if v.HotelsJSON != "" {
		if err := json.Unmarshal([]byte(v.HotelsJSON), &req.RealHotels); err != nil {
			return req, fmt.Errorf("decode hotels: %w", err)
		}
	}
	return req, nil
}
