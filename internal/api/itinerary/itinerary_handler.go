package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// GenerateItinerary godoc
// @Summary      Generate Itinerary
// @Description  Generates a day-by-day itinerary. When the model is unavailable a template itinerary is returned with fallbackUsed set.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.GenerateItineraryRequest true "Trip parameters"
// @Success      200 {object} types.Itinerary "Generated itinerary"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      429 {object} types.Response "Too Many Requests"
// @Security     BearerAuth
// @Router       /itineraries/generate [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.Generate(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// CreateItinerary godoc
// @Summary      Save Itinerary
// @Description  Normalizes and stores an itinerary for the authenticated user. Older layouts are accepted.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        itinerary body types.Itinerary true "Itinerary"
// @Success      201 {object} types.Itinerary "Saved itinerary"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries [post]
func (h *HandlerImpl) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateItinerary"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(ownerID))

	var doc types.Document
	if err := api.DecodeJSONBody(w, r, &doc); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.Create(ctx, ownerID, doc)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// ListItineraries godoc
// @Summary      List Itineraries
// @Description  Lists the authenticated user's itineraries, newest first.
// @Tags         Itineraries
// @Produce      json
// @Success      200 {array} types.Itinerary "Itineraries"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries [get]
func (h *HandlerImpl) ListItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ListItineraries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListItineraries"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	its, err := h.service.List(ctx, ownerID)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, its)
}

// GetItinerary godoc
// @Summary      Get Itinerary
// @Tags         Itineraries
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} types.Itinerary "Itinerary"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Itinerary Not Found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [get]
func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItinerary"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	it, err := h.service.Get(ctx, ownerID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// UpdateItinerary godoc
// @Summary      Replace Itinerary
// @Description  Replaces the whole itinerary body. Creation time is kept.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Param        itinerary body types.Itinerary true "Itinerary"
// @Success      200 {object} types.Itinerary "Updated itinerary"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Itinerary Not Found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [put]
func (h *HandlerImpl) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "UpdateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateItinerary"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var doc types.Document
	if err := api.DecodeJSONBody(w, r, &doc); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.Update(ctx, ownerID, chi.URLParam(r, "id"), doc)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// DeleteItinerary godoc
// @Summary      Delete Itinerary
// @Tags         Itineraries
// @Param        id path string true "Itinerary ID"
// @Success      204 "No Content"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Itinerary Not Found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [delete]
func (h *HandlerImpl) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DeleteItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteItinerary"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.Delete(ctx, ownerID, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItineraryDay godoc
// @Summary      Get Itinerary Day
// @Description  Returns one day of an itinerary by its 1-based position.
// @Tags         Itineraries
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Param        day path int true "Day number"
// @Success      200 {object} types.DayPlan "Day plan"
// @Failure      400 {object} types.Response "Invalid Day"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not Found"
// @Security     BearerAuth
// @Router       /itineraries/{id}/days/{day} [get]
func (h *HandlerImpl) GetItineraryDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItineraryDay", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{id}/days/{day}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItineraryDay"))
	ownerID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Day must be a number")
		return
	}

	plan, err := h.service.GetDay(ctx, ownerID, chi.URLParam(r, "id"), day)
	if err != nil {
		h.writeServiceError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}

func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		api.ValidationErrorResponse(w, r, err)
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
	default:
		l.ErrorContext(r.Context(), "Itinerary request failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
