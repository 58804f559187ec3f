package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func newTestStore(t *testing.T) (*gorm.DB, Repository[widget]) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&widget{}))
	return conn, ProvideStore[widget]()
}

func seedWidget(t *testing.T, conn *gorm.DB, repo Repository[widget], id int64, name string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Insert(context.Background(), conn, &widget{
		ID:        snowflake.ID(id),
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}))
}

func TestStoreListActiveExcludesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	conn, repo := newTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedWidget(t, conn, repo, 1, "first", base)
	seedWidget(t, conn, repo, 2, "second", base.Add(time.Hour))

	rows, err := repo.SoftDelete(ctx, conn, snowflake.ID(1), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	items, err := repo.ListActive(ctx, conn)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].Name)

	found, err := repo.FindByID(ctx, conn, snowflake.ID(1))
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.DeletedAt)
}

func TestStoreListActiveNewestFirst(t *testing.T) {
	conn, repo := newTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedWidget(t, conn, repo, 1, "old", base)
	seedWidget(t, conn, repo, 2, "new", base.Add(time.Minute))

	items, err := repo.ListActive(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Name)
	assert.Equal(t, "old", items[1].Name)
}

func TestStoreFindByIDMissing(t *testing.T) {
	conn, repo := newTestStore(t)
	found, err := repo.FindByID(context.Background(), conn, snowflake.ID(99))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStoreUpdatesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	conn, repo := newTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedWidget(t, conn, repo, 1, "before", base)

	require.NoError(t, repo.Updates(ctx, conn, snowflake.ID(1), map[string]any{"name": "after"}))
	require.NoError(t, repo.Updates(ctx, conn, snowflake.ID(1), nil))

	found, err := repo.FindByID(ctx, conn, snowflake.ID(1))
	require.NoError(t, err)
	assert.Equal(t, "after", found.Name)
	assert.Nil(t, found.DeletedAt)
}

func TestDeleteTransitions(t *testing.T) {
	ctx := context.Background()
	conn, repo := newTestStore(t)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedWidget(t, conn, repo, 1, "target", now)

	outcome, err := Delete(ctx, conn, repo, snowflake.ID(1), false, now)
	require.NoError(t, err)
	assert.Equal(t, SoftDeleted, outcome)

	outcome, err = Delete(ctx, conn, repo, snowflake.ID(1), false, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, SoftDeleted, outcome)

	found, err := repo.FindByID(ctx, conn, snowflake.ID(1))
	require.NoError(t, err)
	require.NotNil(t, found.DeletedAt)
	assert.True(t, found.DeletedAt.Equal(now))

	outcome, err = Delete(ctx, conn, repo, snowflake.ID(1), true, now)
	require.NoError(t, err)
	assert.Equal(t, HardDeleted, outcome)

	found, err = repo.FindByID(ctx, conn, snowflake.ID(1))
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = Delete(ctx, conn, repo, snowflake.ID(1), true, now)
	assert.ErrorIs(t, err, ErrNotFound)
}
