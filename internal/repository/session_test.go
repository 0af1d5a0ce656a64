package repository

import (
	"context"
	"path/filepath"
	"storefront-client/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SessionEntry{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSessionRepositoryEmpty(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t, filepath.Join(t.TempDir(), "s.db")))

	token, user, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
}

func TestSessionRepositorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(openTestDB(t, filepath.Join(t.TempDir(), "s.db")))

	require.NoError(t, repo.Save(ctx, "t1", `{"username":"a"}`))
	require.NoError(t, repo.Save(ctx, "t2", `{"username":"b"}`))

	token, user, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", token)
	assert.JSONEq(t, `{"username":"b"}`, user)
}

func TestSessionRepositorySaveRejectsHalfSession(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t, filepath.Join(t.TempDir(), "s.db")))

	assert.Error(t, repo.Save(context.Background(), "t1", ""))
	assert.Error(t, repo.Save(context.Background(), "", `{"username":"a"}`))
}

func TestSessionRepositoryClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(openTestDB(t, filepath.Join(t.TempDir(), "s.db")))

	require.NoError(t, repo.Save(ctx, "t1", `{"username":"a"}`))
	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	token, user, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
}

func TestSessionRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.db")

	require.NoError(t, NewSessionRepository(openTestDB(t, path)).Save(ctx, "t1", `{"username":"a"}`))

	token, user, err := NewSessionRepository(openTestDB(t, path)).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.JSONEq(t, `{"username":"a"}`, user)
}
