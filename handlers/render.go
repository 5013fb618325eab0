package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripview/models"
)

// RenderRequest is the itinerary plus whatever live results the caller has.
// Either result list may be missing or empty.
type RenderRequest struct {
	Itinerary    models.TripItinerary `json:"itinerary"`
	RealFlights  []models.FlightOffer `json:"realFlights"`
	RealHotels   []models.HotelOffer  `json:"realHotels"`
	TravelerName string               `json:"traveler_name,omitempty"`
}

// RenderHandler renders the posted itinerary as an HTML page.
func (h *Handler) RenderHandler(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, req.Itinerary, req.RealFlights, req.RealHotels); err != nil {
		log.Printf("❌ Render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render itinerary"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
