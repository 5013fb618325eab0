package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripview/database"
	"tripview/views"
)

type memoryStore struct {
	mu      sync.Mutex
	views   map[string]*database.ItineraryView
	saveErr error
	pingErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{views: make(map[string]*database.ItineraryView)}
}

func (m *memoryStore) SaveView(_ context.Context, v *database.ItineraryView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *v
	m.views[v.ID] = &cp
	return nil
}

func (m *memoryStore) GetView(_ context.Context, id string) (*database.ItineraryView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryStore) Ping(context.Context) error { return m.pingErr }

const renderBody = `{
	"itinerary": {
		"tripTitle": "Paris in Spring",
		"tripSummary": "Museums, cafes and a river cruise.",
		"flightDetails": {"airline": "Air France", "flightNumber": "AF1234", "departure": "09:00", "arrival": "11:30", "estimatedCost": "$320"},
		"days": [{"day": 1, "theme": "Arrival", "activities": [
			{"title": "Louvre", "startTime": "14:00", "endTime": "17:00", "type": "activity", "imageQuery": "louvre museum"},
			{"title": "Hotel", "startTime": "18:00", "endTime": "18:30", "type": "lodging",
			 "lodgingDetails": {"hotelName": "Hotel Le Marais", "estimatedCost": "$220"}}
		]}]
	},
	"realFlights": [{"price": {"total": "310.00", "currency": "EUR"}}],
	"realHotels": [{"hotel": {"name": "Pullman Paris", "rating": 4}}, {}],
	"traveler_name": "Dana"
}`

func newTestRouter(t *testing.T, store ViewStore, interval time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := views.NewRenderer("")
	require.NoError(t, err)

	r := gin.New()
	h := New(store, renderer, interval)
	h.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	h.Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRenderHandler(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	w := do(r, http.MethodPost, "/api/render", renderBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Paris in Spring", doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find(".real-flight").Length())
	assert.Equal(t, 2, doc.Find(".hotel").Length())
	assert.Equal(t, "4/5", strings.TrimSpace(doc.Find(".hotel .rating").First().Text()))
	assert.Equal(t, views.HotelNameMissing, doc.Find(".hotel .hotel-name").Eq(1).Text())
	assert.Equal(t, 1, doc.Find(".lodging").Length())
}

func TestRenderHandlerWithoutResults(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	w := do(r, http.MethodPost, "/api/render", `{"itinerary": {"tripTitle": "Solo", "days": []}}`)

	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(".real-flight").Length())
	assert.Equal(t, 0, doc.Find(".real-hotels").Length())
}

func TestRenderHandlerRejectsMalformedJSON(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	w := do(r, http.MethodPost, "/api/render", `{"itinerary": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

}

func TestRenderHandlerDegradesWrongShapedResults(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	body := `{
		"itinerary": {"tripTitle": "Paris in Spring", "days": []},
		"realFlights": [{"validatingAirlineCodes": "AF", "price": {"total": "310.00", "currency": 978}}],
		"realHotels": [{"hotel": {"name": "Pullman Paris", "rating": {"stars": 4}, "amenities": "WIFI"}}]
	}`
	w := do(r, http.MethodPost, "/api/render", body)

	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Paris in Spring", doc.Find("h1").Text())
	assert.Contains(t, doc.Find(".real-flight").Text(), views.MultipleAirlines)
	assert.Contains(t, doc.Find(".real-flight").Text(), "310.00")
	assert.Equal(t, "Pullman Paris", doc.Find(".hotel .hotel-name").Text())
	assert.Equal(t, views.NoRating, strings.TrimSpace(doc.Find(".hotel .rating").Text()))
	assert.Equal(t, 0, doc.Find(".hotel .amenity").Length())
}

func TestSaveViewAndDownload(t *testing.T) {
	store := newMemoryStore()
	r := newTestRouter(t, store, time.Millisecond)

	w := do(r, http.MethodPost, "/api/itineraries", renderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ItineraryID)
	assert.Equal(t, "/itineraries/"+resp.ItineraryID, resp.ViewURL)
	assert.Equal(t, "/api/download/"+resp.ItineraryID, resp.PDFURL)

	stored, err := store.GetView(context.Background(), resp.ItineraryID)
	require.NoError(t, err)
	assert.Equal(t, "Paris in Spring", stored.Title)
	assert.Equal(t, "Dana", stored.TravelerName)

	w = do(r, http.MethodGet, resp.ViewURL, "")
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Paris in Spring", doc.Find("h1").Text())
	assert.Equal(t, 2, doc.Find(".hotel").Length())

	w = do(r, http.MethodGet, resp.PDFURL, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestSaveHandlerStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("connection refused")
	r := newTestRouter(t, store, time.Millisecond)

	w := do(r, http.MethodPost, "/api/itineraries", renderBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUnknownItinerary(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/itineraries/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/download/missing", "").Code)
}

func TestCorruptStoredItinerary(t *testing.T) {
	store := newMemoryStore()
	store.views["bad"] = &database.ItineraryView{ID: "bad", ItineraryJSON: "{not json"}
	r := newTestRouter(t, store, time.Millisecond)

	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/itineraries/bad", "").Code)
}

func TestHealthHandler(t *testing.T) {
	store := newMemoryStore()
	r := newTestRouter(t, store, time.Millisecond)

	w := do(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)

	store.pingErr = errors.New("down")
	w = do(r, http.MethodGet, "/api/health", "")
	assert.Contains(t, w.Body.String(), `"database":"error: down"`)
}

func TestLoadingPage(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	w := do(r, http.MethodGet, "/loading", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	stream, _ := doc.Find(".loading").Attr("data-stream")
	assert.Equal(t, loadingStreamPath, stream)
	assert.Equal(t, 0, doc.Find(".loading-messages li").Length())
}

func TestLoadingPageResumesFromStart(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Second)
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).Add(-2500 * time.Millisecond)

	w := do(r, http.MethodGet, "/loading?started="+strconv.FormatInt(started.UnixMilli(), 10), "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	stream, _ := doc.Find(".loading").Attr("data-stream")
	assert.Equal(t, loadingStreamPath+"?from=2", stream)
	items := doc.Find(".loading-messages li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, views.LoadingMessages[1], items.Eq(1).Text())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/loading?started=yesterday", "").Code)
}

func TestLoadingStreamResumes(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	body := do(r, http.MethodGet, loadingStreamPath+"?from=4", "").Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:message"))
	assert.NotContains(t, body, views.LoadingMessages[3])
	assert.Less(t, strings.Index(body, views.LoadingMessages[4]), strings.Index(body, views.LoadingMessages[5]))
	assert.Equal(t, 1, strings.Count(body, "event:done"))

	body = do(r, http.MethodGet, loadingStreamPath+"?from=6", "").Body.String()
	assert.Equal(t, 0, strings.Count(body, "event:message"))
	assert.Equal(t, 1, strings.Count(body, "event:done"))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, loadingStreamPath+"?from=-1", "").Code)
}

func TestLoadingStream(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Millisecond)

	w := do(r, http.MethodGet, loadingStreamPath, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, len(views.LoadingMessages), strings.Count(body, "event:message"))
	assert.Equal(t, 1, strings.Count(body, "event:done"))

	last := -1
	for _, msg := range views.LoadingMessages {
		idx := strings.Index(body, msg)
		require.Greater(t, idx, last, "message %q out of order", msg)
		last = idx
	}
	assert.Greater(t, strings.Index(body, "event:done"), last)
}

func TestLoadingStreamStopsWhenClientLeaves(t *testing.T) {
	r := newTestRouter(t, newMemoryStore(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, loadingStreamPath, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client went away")
	}
	assert.NotContains(t, w.Body.String(), "event:message")
}
