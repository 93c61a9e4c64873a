package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/config"
	"github.com/FACorreiaa/go-itinerary-planner/internal/container"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const e2eSecret = "e2e-secret"

// E2ETestSuite drives the full HTTP stack with the in-memory store and no
// Gemini key, so every generation takes the fallback path.
type E2ETestSuite struct {
	suite.Suite
	server    *httptest.Server
	container *container.Container
	client    *http.Client
}

func (s *E2ETestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var cfg config.Config
	cfg.Mode = "test"
	cfg.Repositories.Driver = container.DriverMemory
	cfg.JWT.SecretKey = e2eSecret

	c, err := container.NewContainer(context.Background(), &cfg, logger)
	s.Require().NoError(err)
	s.container = c

	s.server = httptest.NewServer(newHTTPHandler(&cfg, c, logger, 30*time.Second))
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.container != nil {
		s.container.Close()
	}
}

func (s *E2ETestSuite) token(userID string) string {
	claims := appMiddleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e2eSecret))
	s.Require().NoError(err)
	return signed
}

func (s *E2ETestSuite) do(method, path, userID string, body any, out any) int {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *E2ETestSuite) TestGenerateSaveAndRetrieve() {
	req := types.GenerateItineraryRequest{Source: "Islamabad", Destination: "Karachi", NumberOfDays: 2}

	var generated types.Itinerary
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/itineraries/generate", "traveller-1", req, &generated))

	s.True(generated.FallbackUsed)
	s.Equal("Islamabad", generated.Source)
	s.Equal("Karachi", generated.Destination)
	s.Require().Len(generated.DayPlans, 2)
	for i, day := range generated.DayPlans {
		s.Equal(i+1, day.Day)
		s.Len(day.Activities, 6)
	}
	s.Len(generated.Recommendations.Dining, 3)
	s.Len(generated.Recommendations.Attractions, 5)
	s.Len(generated.Recommendations.Shopping, 2)
	s.Len(generated.Recommendations.Transportation, 3)
	s.Contains(generated.EstimatedBudget, "$150")

	var created types.Itinerary
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/itineraries", "traveller-1", generated, &created))
	s.Require().NotEmpty(created.ID)
	s.Equal("traveller-1", created.OwnerID)

	var fetched types.Itinerary
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/itineraries/"+created.ID, "traveller-1", nil, &fetched))
	s.Equal(created, fetched)

	fetched.ID, fetched.OwnerID, fetched.CreatedAt, fetched.UpdatedAt = "", "", nil, nil
	s.Equal(generated, fetched)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/itineraries/"+created.ID, "traveller-2", nil, nil))
}

func (s *E2ETestSuite) TestListIsOwnerScopedAndNewestFirst() {
	for _, dest := range []string{"Lahore", "Quetta"} {
		body := types.Document{
			"tripName":     "To " + dest,
			"source":       "Peshawar",
			"destination":  dest,
			"numberOfDays": 1,
		}
		s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/itineraries", "lister", body, nil))
	}

	var list []types.Itinerary
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/itineraries", "lister", nil, &list))
	s.Require().Len(list, 2)
	s.Equal("Quetta", list[0].Destination)
	s.Equal("Lahore", list[1].Destination)

	var empty []types.Itinerary
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/itineraries", "stranger", nil, &empty))
	s.Empty(empty)
}

func (s *E2ETestSuite) TestUpdateDayAndDelete() {
	body := types.Document{
		"tripName":     "Northern loop",
		"source":       "Islamabad",
		"destination":  "Hunza",
		"numberOfDays": 2,
		"dayPlans": []any{
			map[string]any{"day": 1, "activities": []any{map[string]any{"name": "Drive up the KKH"}}},
			map[string]any{"day": 2, "activities": []any{map[string]any{"description": "Baltit Fort"}}},
		},
		"dining": []any{"Cafe de Hunza", map[string]any{"name": "Hunza Food Pavilion"}},
	}

	var created types.Itinerary
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/itineraries", "editor", body, &created))
	s.Equal([]string{"Cafe de Hunza", "Hunza Food Pavilion"}, created.Recommendations.Dining)
	s.Equal("Drive up the KKH", created.DayPlans[0].Activities[0].Description)

	var day types.DayPlan
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/itineraries/"+created.ID+"/days/2", "editor", nil, &day))
	s.Equal("Baltit Fort", day.Activities[0].Description)

	body["tripName"] = "Northern loop, revised"
	var updated types.Itinerary
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, "/api/v1/itineraries/"+created.ID, "editor", body, &updated))
	s.Equal("Northern loop, revised", updated.TripName)
	s.Equal(created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/itineraries/"+created.ID, "editor", nil, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/itineraries/"+created.ID, "editor", nil, nil))
}

func (s *E2ETestSuite) TestRejectsUnauthenticatedAndInvalid() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/itineraries", "", nil, nil))

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/itineraries/generate", "traveller-1",
		types.GenerateItineraryRequest{Source: "Islamabad", Destination: "Karachi"}, nil))
}

func (s *E2ETestSuite) TestPing() {
	resp, err := s.client.Get(s.server.URL + "/ping")
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", strings.TrimSpace(string(raw)))
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end suite in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
