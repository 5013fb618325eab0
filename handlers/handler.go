package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"tripview/database"
	"tripview/views"
)

// ViewStore persists submitted itinerary views.
type ViewStore interface {
	SaveView(ctx context.Context, v *database.ItineraryView) error
	GetView(ctx context.Context, id string) (*database.ItineraryView, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	store           ViewStore
	renderer        *views.Renderer
	loadingInterval time.Duration
	now             func() time.Time
}

func New(store ViewStore, renderer *views.Renderer, loadingInterval time.Duration) *Handler {
	return &Handler{
		store:           store,
		renderer:        renderer,
		loadingInterval: loadingInterval,
		now:             time.Now,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/itineraries/:id", h.ViewHandler)
	r.GET("/loading", h.LoadingPageHandler)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthHandler)
		api.POST("/render", h.RenderHandler)
		api.POST("/itineraries", h.SaveHandler)
		api.GET("/download/:id", h.DownloadHandler)
		api.GET("/loading/stream", h.LoadingStreamHandler)
	}
}
