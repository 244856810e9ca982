package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/store"

	_ "modernc.org/sqlite"
)

func setupKV(t *testing.T) *store.KV {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv, err := store.Open(context.Background(), db)
	require.NoError(t, err)
	return kv
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLogger() logging.Logger { return logging.Discard() }
