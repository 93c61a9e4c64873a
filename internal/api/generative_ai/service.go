package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// ErrNoAPIKey is returned by NewAIClient when no Gemini key is configured.
var ErrNoAPIKey = errors.New("gemini API key is not set")

// Options configures the Gemini client.
type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	// Breaker trips after this many consecutive failures. Zero disables it.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// AIClient sends single prompts to Gemini and returns the text of the reply.
type AIClient struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

func NewAIClient(ctx context.Context, opts Options, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	if opts.APIKey == "" {
		span.RecordError(ErrNoAPIKey)
		span.SetStatus(codes.Error, "API key not set")
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	ai := &AIClient{
		client: client,
		model:  opts.Model,
		config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(opts.Temperature),
			ResponseMIMEType: "application/json",
		},
		logger: logger,
	}
	if opts.BreakerFailures > 0 {
		ai.breaker = newBreaker(opts, logger)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return ai, nil
}

func newBreaker(opts Options, logger *slog.Logger) *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "gemini",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}

// GenerateText sends prompt to the model and returns the raw reply text.
// Errors caused by a temporarily overloaded service satisfy IsOverloaded.
func (ai *AIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateText", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	call := func() (string, error) {
		result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), ai.config)
		if err != nil {
			return "", classify(err)
		}
		txt := result.Text()
		if txt == "" {
			return "", errors.New("empty response from model")
		}
		return txt, nil
	}

	var (
		txt string
		err error
	)
	if ai.breaker != nil {
		txt, err = ai.breaker.Execute(call)
	} else {
		txt, err = call()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", err
	}

	span.SetAttributes(attribute.Int("response.length", len(txt)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return txt, nil
}

// Unavailable is a generator that always fails. It stands in when no
// API key is configured so every request degrades to the fallback.
type Unavailable struct{}

func (Unavailable) GenerateText(context.Context, string) (string, error) {
	return "", ErrNoAPIKey
}
