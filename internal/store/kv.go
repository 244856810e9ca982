// Package store implements the local persistence layer: a per-key
// mapping from string key to a JSON-serializable value, backed by
// SQLite. Writes are persisted synchronously and observable by every
// reader of the key in the same process; subscribers are notified
// after each change. There are no cross-key transactions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/OMEGA178/faktury/internal/dbx"
	"github.com/OMEGA178/faktury/internal/store/migrations"
)

// KV is the process-wide local store. A key is mutated by exactly one
// logical owner (the sync orchestrator for that collection) plus
// direct service-layer writes; the internal mutex serializes them so
// updaters only ever see a consistent current value.
type KV struct {
	db *sql.DB

	mu     sync.Mutex
	subsMu sync.Mutex
	subs   map[string]map[int]func(origin string)
	nextID int
}

// Open runs schema migrations on db and returns a ready KV.
// The caller keeps ownership of db and closes it on shutdown.
func Open(ctx context.Context, db *sql.DB) (*KV, error) {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &KV{db: db, subs: make(map[string]map[int]func(string))}, nil
}

// GetRaw returns the stored bytes for key, with ok=false when the key
// has never been written.
func (kv *KV) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	return getRaw(ctx, kv.db, key)
}

func getRaw(ctx context.Context, q dbx.DBTX, key string) ([]byte, bool, error) {
	var value []byte
	row := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func setRaw(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := q.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to upsert key %q: %w", key, err)
	}
	return nil
}

// SetRaw persists value under key and notifies subscribers of the key.
func (kv *KV) SetRaw(ctx context.Context, key string, value []byte) error {
	if err := setRaw(ctx, kv.db, key, value); err != nil {
		return err
	}
	kv.notify(key, "")
	return nil
}

// Subscribe registers fn to run after every write to key and returns
// an unsubscribe function. fn receives the origin tag the writer
// passed to UpdateAs ("" for untagged writes), so a subscriber can
// recognize writes it performed itself. After unsubscribe returns, fn
// is never invoked again.
func (kv *KV) Subscribe(key string, fn func(origin string)) func() {
	kv.subsMu.Lock()
	defer kv.subsMu.Unlock()

	if kv.subs[key] == nil {
		kv.subs[key] = make(map[int]func(string))
	}
	id := kv.nextID
	kv.nextID++
	kv.subs[key][id] = fn

	return func() {
		kv.subsMu.Lock()
		defer kv.subsMu.Unlock()
		delete(kv.subs[key], id)
	}
}

func (kv *KV) notify(key, origin string) {
	kv.subsMu.Lock()
	fns := make([]func(string), 0, len(kv.subs[key]))
	for _, fn := range kv.subs[key] {
		fns = append(fns, fn)
	}
	kv.subsMu.Unlock()

	for _, fn := range fns {
		fn(origin)
	}
}

// Get unmarshals the value stored under key into T, returning def
// when the key is absent.
func Get[T any](ctx context.Context, kv *KV, key string, def T) (T, error) {
	raw, ok, err := kv.GetRaw(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return def, fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return value, nil
}

// Update applies fn to the current value of key (or def when absent)
// and persists the result. The read and the write run in one
// transaction under the store lock, so concurrent updaters never lose
// writes. fn must be a pure function of its input.
func Update[T any](ctx context.Context, kv *KV, key string, def T, fn func(T) T) (T, error) {
	return UpdateAs(ctx, kv, key, def, "", fn)
}

// UpdateAs is Update with an origin tag attached to the subscriber
// notification. A subscriber that also writes the key passes its own
// tag here and skips notifications carrying it; writes from anyone
// else still reach it.
func UpdateAs[T any](ctx context.Context, kv *KV, key string, def T, origin string, fn func(T) T) (T, error) {
	kv.mu.Lock()

	var next T
	err := dbx.WithTx(ctx, kv.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current := def
		raw, ok, err := getRaw(ctx, tx, key)
		if err != nil {
			return err
		}
		if ok {
			if err := json.Unmarshal(raw, &current); err != nil {
				return fmt.Errorf("failed to decode key %q: %w", key, err)
			}
		}

		next = fn(current)

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode key %q: %w", key, err)
		}
		return setRaw(ctx, tx, key, encoded)
	})
	kv.mu.Unlock()
	if err != nil {
		return def, err
	}

	kv.notify(key, origin)
	return next, nil
}
