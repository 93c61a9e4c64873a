package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-planner/internal/router"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type nopGenerator struct{}

func (nopGenerator) GenerateText(context.Context, string) (string, error) {
	return "", io.ErrUnexpectedEOF
}

// setupBenchmarkRouter wires the real handlers over the memory store with
// authentication replaced by a fixed owner.
func setupBenchmarkRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := itinerary.NewGenerator(nopGenerator{}, itinerary.NewCacheMemo(), itinerary.DefaultRetryPolicy(), logger)
	svc := itinerary.NewServiceImpl(itinerary.NewMemoryRepository(), gen, logger)

	return router.SetupRouter(&router.Config{
		ItineraryHandler: itinerary.NewHandlerImpl(svc, logger),
		AuthenticateMiddleware: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(appMiddleware.WithUserID(r.Context(), "bench-user")))
			})
		},
	})
}

func BenchmarkNormalize(b *testing.B) {
	doc := itinerary.ToDocument(itinerary.FallbackItinerary(types.GenerateItineraryRequest{
		Source: "Islamabad", Destination: "Karachi", NumberOfDays: 7,
	}))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = itinerary.Normalize(doc)
	}
}

func BenchmarkGenerateFallback(b *testing.B) {
	h := setupBenchmarkRouter()
	body, _ := json.Marshal(types.GenerateItineraryRequest{Source: "Islamabad", Destination: "Karachi", NumberOfDays: 3})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkCreateAndGet(b *testing.B) {
	h := setupBenchmarkRouter()
	body, _ := json.Marshal(itinerary.ToDocument(itinerary.FallbackItinerary(types.GenerateItineraryRequest{
		Source: "Lahore", Destination: "Multan", NumberOfDays: 2,
	})))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusCreated {
			b.Fatalf("create: unexpected status %d", rr.Code)
		}

		var created types.Itinerary
		if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
			b.Fatal(err)
		}

		rr = httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/itineraries/"+created.ID, nil))
		if rr.Code != http.StatusOK {
			b.Fatalf("get: unexpected status %d", rr.Code)
		}
	}
}
