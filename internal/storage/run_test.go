package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/0x0BSoD/featfeed/internal/model"
)

func newTestStorage(t *testing.T) *RunStorage {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s := NewRunStorage(db)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Migrate(context.Background()))

	return s
}

func TestRunStorage_StoreAndRecent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	runs := []model.Run{
		{ID: "a", Feature: "Feat422", UsersCount: 10, ItemsCount: 10, Checksum: 0xdeadbeef, Duration: 3 * time.Millisecond, CreatedAt: base},
		{ID: "b", Feature: "Feat422", UsersCount: 20, ItemsCount: 20, Checksum: 1, Duration: time.Second, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Feature: "Feat424", UsersCount: 5, ItemsCount: 5, Checksum: 2, Duration: time.Microsecond, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range runs {
		require.NoError(t, s.Store(ctx, run))
	}

	got, err := s.Recent(ctx, "Feat422", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, runs[1], got[0])
	assert.Equal(t, runs[0], got[1])

	got, err = s.Recent(ctx, "Feat422", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	got, err = s.Recent(ctx, "Feat999", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunStorage_Store_DuplicateID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	run := model.Run{ID: "a", Feature: "Feat422", CreatedAt: time.Now()}
	require.NoError(t, s.Store(ctx, run))
	assert.Error(t, s.Store(ctx, run))
}

func TestRunStorage_Recent_ZeroLimit(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, model.Run{ID: "a", Feature: "Feat422", CreatedAt: time.Now()}))

	got, err := s.Recent(ctx, "Feat422", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunStorage_Recent_SameCreatedAt(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, s.Store(ctx, model.Run{ID: id, Feature: "Feat422", CreatedAt: at}))
	}
	require.NoError(t, s.Store(ctx, model.Run{ID: "z", Feature: "Feat422", CreatedAt: at.Add(-time.Second)}))

	got, err := s.Recent(ctx, "Feat422", 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, run := range got {
		ids = append(ids, run.ID)
	}
	assert.Equal(t, []string{"c", "b", "a", "z"}, ids)
}
