package stories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysync/internal/client/models"
	"storysync/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE stories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  photo_url TEXT NOT NULL,
  lat REAL,
  lon REAL,
  created_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func f64(v float64) *float64 { return &v }

func seed(t *testing.T, r *SQLiteRepository, s *models.Story) {
	t.Helper()
	require.NoError(t, r.Upsert(context.Background(), s))
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seed(t, r, &models.Story{
		Id:          "id1",
		Name:        "Dina",
		Description: "Sunset walk",
		PhotoURL:    "https://example.com/p/1.jpg",
		Lat:         f64(12.34),
		Lon:         f64(56.78),
		CreatedAt:   created,
	})

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "Dina", got.Name)
	assert.Equal(t, "Sunset walk", got.Description)
	assert.Equal(t, "https://example.com/p/1.jpg", got.PhotoURL)
	require.NotNil(t, got.Lat)
	require.NotNil(t, got.Lon)
	assert.Equal(t, 12.34, *got.Lat)
	assert.Equal(t, 56.78, *got.Lon)
	assert.True(t, got.CreatedAt.Equal(created))

	// update by the same id
	seed(t, r, &models.Story{
		Id:          "id1",
		Name:        "Dina",
		Description: "Sunset walk, updated",
		PhotoURL:    "https://example.com/p/1b.jpg",
		CreatedAt:   created,
	})

	got, err = r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "Sunset walk, updated", got.Description)
	assert.Equal(t, "https://example.com/p/1b.jpg", got.PhotoURL)
	assert.Nil(t, got.Lat)
	assert.Nil(t, got.Lon)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAll_ReturnsEveryRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	seed(t, r, &models.Story{Id: "a", Name: "n1", Description: "d1", PhotoURL: "u1",
		Lat: f64(1), Lon: f64(2), CreatedAt: time.Now().UTC()})
	seed(t, r, &models.Story{Id: "b", Name: "n2", Description: "d2", PhotoURL: "u2",
		CreatedAt: time.Now().UTC()})

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := make(map[string]struct{})
	for _, s := range got {
		ids[s.Id] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, ids)
}

func TestGetAll_HalfSetPairIsDropped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// lat without lon can only come from a malformed row
	seed(t, r, &models.Story{Id: "a", Name: "n", Description: "d", PhotoURL: "u",
		Lat: f64(1), CreatedAt: time.Now().UTC()})

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Lat)
	assert.Nil(t, got[0].Lon)
}

func TestDeleteByID_AbsentIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	seed(t, r, &models.Story{Id: "x", Name: "n", Description: "d", PhotoURL: "u",
		CreatedAt: time.Now().UTC()})

	require.NoError(t, r.DeleteByID(ctx, "x"))
	require.NoError(t, r.DeleteByID(ctx, "x"))

	_, err := r.GetByID(ctx, "x")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	seed(t, r, &models.Story{Id: "a", Name: "n", Description: "d", PhotoURL: "u", CreatedAt: time.Now().UTC()})
	seed(t, r, &models.Story{Id: "b", Name: "n", Description: "d", PhotoURL: "u", CreatedAt: time.Now().UTC()})

	require.NoError(t, r.Clear(ctx))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
