package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type downGenerator struct{}

func (downGenerator) GenerateText(context.Context, string) (string, error) {
	return "", assert.AnError
}

func newTestRouter(limit int) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := itinerary.NewGenerator(downGenerator{}, itinerary.NewCacheMemo(), itinerary.DefaultRetryPolicy(), logger)
	svc := itinerary.NewServiceImpl(itinerary.NewMemoryRepository(), gen, logger)

	return SetupRouter(&Config{
		ItineraryHandler: itinerary.NewHandlerImpl(svc, logger),
		AuthenticateMiddleware: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(appMiddleware.WithUserID(r.Context(), "router-user")))
			})
		},
		GenerateRateLimit:  limit,
		GenerateRateWindow: time.Hour,
	})
}

func generate(h http.Handler) *httptest.ResponseRecorder {
	body, _ := json.Marshal(types.GenerateItineraryRequest{Source: "Islamabad", Destination: "Karachi", NumberOfDays: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/generate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer x")
	req.RemoteAddr = "203.0.113.7:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPing(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestItineraryRoutesRequireAuth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/itineraries", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGenerateRateLimit(t *testing.T) {
	h := newTestRouter(2)

	assert.Equal(t, http.StatusOK, generate(h).Code)
	assert.Equal(t, http.StatusOK, generate(h).Code)

	rr := generate(h)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	var body types.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestGenerateUnlimitedByDefault(t *testing.T) {
	h := newTestRouter(0)
	for range 5 {
		assert.Equal(t, http.StatusOK, generate(h).Code)
	}
}

func TestRateLimitDoesNotCoverCRUD(t *testing.T) {
	h := newTestRouter(1)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries", nil)
		req.Header.Set("Authorization", "Bearer x")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/itineraries", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	newTestRouter(0).ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
