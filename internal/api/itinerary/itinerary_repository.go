package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// Repository is the per-owner document store. A document owned by someone
// else is reported exactly like a missing one, with types.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, ownerID string, body types.Document) (*types.StoredDocument, error)
	// List returns the owner's documents, newest first.
	List(ctx context.Context, ownerID string) ([]*types.StoredDocument, error)
	Get(ctx context.Context, ownerID, id string) (*types.StoredDocument, error)
	// Update replaces the whole body and keeps CreatedAt.
	Update(ctx context.Context, ownerID, id string, body types.Document) (*types.StoredDocument, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// PgxPool is the subset of *pgxpool.Pool used by PostgresRepository.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresRepository)(nil)

// PostgresRepository stores bodies as JSONB in the itineraries table.
type PostgresRepository struct {
	logger *slog.Logger
	pgpool PgxPool
	now    func() time.Time
}

func NewPostgresRepository(pgpool PgxPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID string, body types.Document) (*types.StoredDocument, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	id := uuid.New()
	now := r.now()
	query := `
        INSERT INTO itineraries (id, owner_id, body, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
    `
	start := time.Now()
	_, err = r.pgpool.Exec(ctx, query, id, ownerID, raw, now)
	observeQuery(ctx, "create", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create itinerary: %w", err)
	}

	return &types.StoredDocument{
		ID:        id.String(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
		Body:      body,
	}, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*types.StoredDocument, error) {
	query := `
        SELECT id::text, owner_id, body, created_at, updated_at
        FROM itineraries
        WHERE owner_id = $1
        ORDER BY created_at DESC, id DESC
    `
	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, ownerID)
	if err != nil {
		observeQuery(ctx, "list", start, err)
		r.logger.ErrorContext(ctx, "Failed to query itineraries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	docs := make([]*types.StoredDocument, 0)
	for rows.Next() {
		doc, err := scanStoredDocument(rows)
		if err != nil {
			observeQuery(ctx, "list", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan itinerary row", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		docs = append(docs, doc)
	}
	err = rows.Err()
	observeQuery(ctx, "list", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating itinerary rows", slog.Any("error", err))
		return nil, fmt.Errorf("error iterating itineraries: %w", err)
	}
	return docs, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (*types.StoredDocument, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, types.ErrNotFound
	}

	query := `
        SELECT id::text, owner_id, body, created_at, updated_at
        FROM itineraries
        WHERE id = $1 AND owner_id = $2
    `
	start := time.Now()
	doc, err := scanStoredDocument(r.pgpool.QueryRow(ctx, query, docID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		observeQuery(ctx, "get", start, nil)
		return nil, types.ErrNotFound
	}
	observeQuery(ctx, "get", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, body types.Document) (*types.StoredDocument, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, types.ErrNotFound
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	now := r.now()
	query := `
        UPDATE itineraries
        SET body = $3, updated_at = $4
        WHERE id = $1 AND owner_id = $2
        RETURNING created_at
    `
	start := time.Now()
	var createdAt time.Time
	err = r.pgpool.QueryRow(ctx, query, docID, ownerID, raw, now).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		observeQuery(ctx, "update", start, nil)
		return nil, types.ErrNotFound
	}
	observeQuery(ctx, "update", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update itinerary: %w", err)
	}

	return &types.StoredDocument{
		ID:        docID.String(),
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: now,
		Body:      body,
	}, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return types.ErrNotFound
	}

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM itineraries WHERE id = $1 AND owner_id = $2`, docID, ownerID)
	observeQuery(ctx, "delete", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func scanStoredDocument(row pgx.Row) (*types.StoredDocument, error) {
	var (
		doc types.StoredDocument
		raw []byte
	)
	if err := row.Scan(&doc.ID, &doc.OwnerID, &raw, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &doc.Body); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary body: %w", err)
	}
	if doc.Body == nil {
		doc.Body = types.Document{}
	}
	return &doc, nil
}

func observeQuery(ctx context.Context, op string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("table", "itineraries"))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
