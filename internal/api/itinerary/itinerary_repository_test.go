package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var repoColumns = []string{"id", "owner_id", "body", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewPostgresRepository(mock, discardLogger())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	return repo, mock
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	body := types.Document{"tripName": "Coast"}

	mock.ExpectExec("INSERT INTO itineraries").
		WithArgs(pgxmock.AnyArg(), "owner-1", []byte(`{"tripName":"Coast"}`), repo.now()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	doc, err := repo.Create(context.Background(), "owner-1", body)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(doc.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "owner-1", doc.OwnerID)
	assert.Equal(t, repo.now(), doc.CreatedAt)
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO itineraries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), "owner-1", types.Document{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create itinerary")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListNewestFirst(t *testing.T) {
	repo, mock := newMockRepository(t)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM itineraries").
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows(repoColumns).
			AddRow("b", "owner-1", []byte(`{"tripName":"Newer"}`), newer, newer).
			AddRow("a", "owner-1", []byte(`{"tripName":"Older"}`), older, older))

	docs, err := repo.List(context.Background(), "owner-1")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Newer", docs[0].Body["tripName"])
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, older, docs[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("FROM itineraries").WithArgs("nobody").WillReturnRows(pgxmock.NewRows(repoColumns))

	docs, err := repo.List(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestPostgresRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM itineraries").
		WithArgs(id, "owner-1").
		WillReturnRows(pgxmock.NewRows(repoColumns).
			AddRow(id.String(), "owner-1", []byte(`{"dayPlans":[{"day":1}]}`), created, created))

	doc, err := repo.Get(context.Background(), "owner-1", id.String())

	require.NoError(t, err)
	assert.Equal(t, id.String(), doc.ID)
	assert.Len(t, doc.Body["dayPlans"], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetNotFound(t *testing.T) {
	t.Run("no row for owner", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		id := uuid.New()
		mock.ExpectQuery("FROM itineraries").WithArgs(id, "intruder").WillReturnRows(pgxmock.NewRows(repoColumns))

		_, err := repo.Get(context.Background(), "intruder", id.String())

		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		_, err := repo.Get(context.Background(), "owner-1", "not-a-uuid")

		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_UpdateKeepsCreatedAt(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	created := time.Date(2023, 12, 24, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE itineraries").
		WithArgs(id, "owner-1", []byte(`{"tripName":"Replaced"}`), repo.now()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	doc, err := repo.Update(context.Background(), "owner-1", id.String(), types.Document{"tripName": "Replaced"})

	require.NoError(t, err)
	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, repo.now(), doc.UpdatedAt)
	assert.Equal(t, "Replaced", doc.Body["tripName"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	mock.ExpectQuery("UPDATE itineraries").
		WithArgs(id, "intruder", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}))

	_, err := repo.Update(context.Background(), "intruder", id.String(), types.Document{})

	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		id := uuid.New()
		mock.ExpectExec("DELETE FROM itineraries").
			WithArgs(id, "owner-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(context.Background(), "owner-1", id.String()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		id := uuid.New()
		mock.ExpectExec("DELETE FROM itineraries").
			WithArgs(id, "intruder").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "intruder", id.String()), types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
