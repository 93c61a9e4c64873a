package itinerary

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// Service is the itinerary use-case layer shared by every transport.
type Service interface {
	// Generate validates req and returns an AI or fallback itinerary. Only
	// validation errors are returned.
	Generate(ctx context.Context, req types.GenerateItineraryRequest) (types.Itinerary, error)
	Create(ctx context.Context, ownerID string, doc types.Document) (types.Itinerary, error)
	List(ctx context.Context, ownerID string) ([]types.Itinerary, error)
	Get(ctx context.Context, ownerID, id string) (types.Itinerary, error)
	Update(ctx context.Context, ownerID, id string, doc types.Document) (types.Itinerary, error)
	Delete(ctx context.Context, ownerID, id string) error
	GetDay(ctx context.Context, ownerID, id string, day int) (types.DayPlan, error)
}

// ItineraryGenerator is satisfied by *Generator.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req types.GenerateItineraryRequest) types.Itinerary
}

var _ Service = (*ServiceImpl)(nil)
var _ ItineraryGenerator = (*Generator)(nil)

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	generator ItineraryGenerator
}

func NewServiceImpl(repo Repository, generator ItineraryGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		generator: generator,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, req types.GenerateItineraryRequest) (types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("source", req.Source),
		attribute.String("destination", req.Destination),
		attribute.Int("days", req.NumberOfDays),
	))
	defer span.End()

	if err := api.Validate(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid generation request")
		return types.Itinerary{}, err
	}

	it := s.generator.Generate(ctx, req)
	span.SetAttributes(attribute.Bool("fallback_used", it.FallbackUsed))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return it, nil
}

func (s *ServiceImpl) Create(ctx context.Context, ownerID string, doc types.Document) (types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Create", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Create"), slog.String("ownerID", ownerID))

	it := Normalize(doc)
	if err := api.Validate(it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid itinerary")
		return types.Itinerary{}, err
	}

	stored, err := s.repo.Create(ctx, ownerID, ToDocument(it))
	if err != nil {
		l.ErrorContext(ctx, "Repository failed to create itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create itinerary")
		return types.Itinerary{}, fmt.Errorf("failed to create itinerary: %w", err)
	}

	l.InfoContext(ctx, "Itinerary saved", slog.String("itineraryID", stored.ID))
	span.SetAttributes(attribute.String("itinerary.id", stored.ID))
	span.SetStatus(codes.Ok, "Itinerary created")
	return fromStored(stored), nil
}

func (s *ServiceImpl) List(ctx context.Context, ownerID string) ([]types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "List", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
	))
	defer span.End()

	docs, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list itineraries")
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}

	out := make([]types.Itinerary, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromStored(d))
	}
	span.SetAttributes(attribute.Int("itineraries.count", len(out)))
	span.SetStatus(codes.Ok, "Itineraries listed")
	return out, nil
}

func (s *ServiceImpl) Get(ctx context.Context, ownerID, id string) (types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Get", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("itinerary.id", id),
	))
	defer span.End()

	stored, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get itinerary")
		return types.Itinerary{}, fmt.Errorf("failed to get itinerary: %w", err)
	}

	span.SetStatus(codes.Ok, "Itinerary retrieved")
	return fromStored(stored), nil
}

func (s *ServiceImpl) Update(ctx context.Context, ownerID, id string, doc types.Document) (types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Update", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("itinerary.id", id),
	))
	defer span.End()

	it := Normalize(doc)
	if err := api.Validate(it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid itinerary")
		return types.Itinerary{}, err
	}

	stored, err := s.repo.Update(ctx, ownerID, id, ToDocument(it))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update itinerary")
		return types.Itinerary{}, fmt.Errorf("failed to update itinerary: %w", err)
	}

	s.logger.InfoContext(ctx, "Itinerary replaced", slog.String("itineraryID", id))
	span.SetStatus(codes.Ok, "Itinerary updated")
	return fromStored(stored), nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Delete", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("itinerary.id", id),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete itinerary")
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}

	s.logger.InfoContext(ctx, "Itinerary deleted", slog.String("itineraryID", id))
	span.SetStatus(codes.Ok, "Itinerary deleted")
	return nil
}

// GetDay returns the day at 1-based position day of the visible days.
func (s *ServiceImpl) GetDay(ctx context.Context, ownerID, id string, day int) (types.DayPlan, error) {
	it, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return types.DayPlan{}, err
	}
	days := it.VisibleDays()
	if day < 1 || day > len(days) {
		return types.DayPlan{}, fmt.Errorf("day %d: %w", day, types.ErrNotFound)
	}
	return days[day-1], nil
}

func fromStored(doc *types.StoredDocument) types.Itinerary {
	it := Normalize(doc.Body)
	it.ID = doc.ID
	it.OwnerID = doc.OwnerID
	createdAt, updatedAt := doc.CreatedAt, doc.UpdatedAt
	it.CreatedAt = &createdAt
	it.UpdatedAt = &updatedAt
	return it
}
