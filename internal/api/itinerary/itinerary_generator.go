package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-itinerary-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// TextGenerator sends a prompt to a language model and returns its reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var _ TextGenerator = (*generativeAI.AIClient)(nil)
var _ TextGenerator = generativeAI.Unavailable{}

// RetryPolicy bounds retries on overload. Attempts counts the first call.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialBackoff: 2 * time.Second}
}

const (
	outcomeAI       = "ai"
	outcomeCache    = "cache"
	outcomeFallback = "fallback"
)

// Generator produces itineraries from the model, memoizing successful
// replies and degrading to FallbackItinerary on any failure.
type Generator struct {
	ai     TextGenerator
	memo   Memo
	policy RetryPolicy
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewGenerator(ai TextGenerator, memo Memo, policy RetryPolicy, logger *slog.Logger) *Generator {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Generator{
		ai:     ai,
		memo:   memo,
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Generate never fails. The returned itinerary has FallbackUsed set when it
// is the deterministic template rather than a model reply.
func (g *Generator) Generate(ctx context.Context, req types.GenerateItineraryRequest) types.Itinerary {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("source", req.Source),
		attribute.String("destination", req.Destination),
		attribute.Int("days", req.NumberOfDays),
	))
	defer span.End()

	l := g.logger.With(slog.String("method", "Generate"),
		slog.String("source", req.Source),
		slog.String("destination", req.Destination),
		slog.Int("days", req.NumberOfDays))

	start := time.Now()
	key := newMemoKey(req)
	if cached, ok := g.memo.Get(key); ok {
		l.DebugContext(ctx, "Serving itinerary from memo")
		g.record(ctx, outcomeCache, start)
		span.SetAttributes(attribute.String("outcome", outcomeCache))
		span.SetStatus(codes.Ok, "Itinerary served from memo")
		return cached
	}

	it, err := g.generateWithRetry(ctx, req, l)
	if err != nil {
		l.WarnContext(ctx, "AI generation failed, using fallback itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetAttributes(attribute.String("outcome", outcomeFallback))
		span.SetStatus(codes.Ok, "Fallback itinerary generated")
		g.record(ctx, outcomeFallback, start)
		return FallbackItinerary(req)
	}

	g.memo.Put(key, it)
	l.InfoContext(ctx, "Itinerary generated", slog.Int("day_plans", len(it.DayPlans)))
	span.SetAttributes(attribute.String("outcome", outcomeAI))
	span.SetStatus(codes.Ok, "Itinerary generated")
	g.record(ctx, outcomeAI, start)
	return it
}

func (g *Generator) generateWithRetry(ctx context.Context, req types.GenerateItineraryRequest, l *slog.Logger) (types.Itinerary, error) {
	prompt := getItineraryPrompt(req)
	backoff := g.policy.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= g.policy.MaxAttempts; attempt++ {
		reply, err := g.ai.GenerateText(ctx, prompt)
		if err == nil {
			return parseGeneratedItinerary(reply, req)
		}
		lastErr = err
		if !generativeAI.IsOverloaded(err) || attempt == g.policy.MaxAttempts {
			break
		}

		l.WarnContext(ctx, "Model overloaded, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", g.policy.MaxAttempts),
			slog.Duration("wait_duration", backoff))
		metrics.Get().GenerationRetriesTotal.Add(ctx, 1)

		if err := g.sleep(ctx, backoff); err != nil {
			return types.Itinerary{}, fmt.Errorf("retry wait interrupted: %w", err)
		}
		backoff *= 2
	}
	return types.Itinerary{}, fmt.Errorf("generation failed: %w", lastErr)
}

func (g *Generator) record(ctx context.Context, outcome string, start time.Time) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m := metrics.Get()
	m.GenerationsTotal.Add(ctx, 1, attrs)
	m.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
}
