package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tripview/views"
)

const loadingStreamPath = "/api/loading/stream"

// LoadingPageHandler serves the loading view. With ?started=<unix ms> the page
// lists what has been revealed since then and the stream resumes after it.
func (h *Handler) LoadingPageHandler(c *gin.Context) {
	var revealed []string
	if raw := c.Query("started"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "started must be a unix timestamp in milliseconds"})
			return
		}
		revealed = views.MessagesAt(h.now().Sub(time.UnixMilli(ms)), h.loadingInterval)
	}

	streamURL := loadingStreamPath
	if len(revealed) > 0 {
		streamURL += "?from=" + strconv.Itoa(len(revealed))
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderLoading(&buf, streamURL, revealed); err != nil {
		log.Printf("❌ Render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render loading view"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// LoadingStreamHandler sends one "message" event per revealed loading message
// and a final "done" event. ?from=n skips the first n messages. The sequencer
// lives as long as the request: a client disconnect cancels it and stops its
// ticker.
func (h *Handler) LoadingStreamHandler(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a non-negative integer"})
			return
		}
		from = n
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	seq := views.ResumeSequencer(h.loadingInterval, from)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	if !seq.Done() {
		remaining := len(views.LoadingMessages) - len(seq.Displayed())
		seq.Start(ctx)
		for msg := range seq.Updates() {
			c.SSEvent("message", msg)
			c.Writer.Flush()
			remaining--
			if remaining == 0 {
				break
			}
		}
		if remaining > 0 {
			return
		}
	}
	c.SSEvent("done", "complete")
	c.Writer.Flush()
}
