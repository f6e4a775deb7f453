package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSqlite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestGormBackendRoundTrip(t *testing.T) {
	t.Parallel()
	backend, err := NewGormBackend(openSqlite(t), "products")
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	_, found, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Save(ctx, []byte(`[{"id":"a"}]`)))
	require.NoError(t, backend.Save(ctx, []byte(`[]`)))

	payload, found, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", string(payload))
}

func TestGormBackendStore(t *testing.T) {
	t.Parallel()
	backend, err := NewGormBackend(openSqlite(t), "products")
	require.NoError(t, err)
	defer backend.Close()

	s := openTestStore(t, backend)
	require.Equal(t, 3, s.Len())
	_, err = s.Toggle(context.Background(), "prod3")
	require.NoError(t, err)

	again := openTestStore(t, backend)
	p, ok := again.Get("prod3")
	require.True(t, ok)
	assert.False(t, p.Available)
}
