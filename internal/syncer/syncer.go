// Package syncer coordinates one entity collection between the local
// store and the remote mirror: it merges inbound remote snapshots
// into the local store, debounces outbound full-collection writes,
// and tracks a per-collection sync status. Remote unavailability is
// never an error for local work; it only moves the status indicator.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/merge"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/remote"
	"github.com/OMEGA178/faktury/internal/store"
)

// Status is the sync state of one collection.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusError   Status = "error"
	StatusOffline Status = "offline"
)

// Config holds per-collection orchestrator settings. Collection is
// both the local store key and the remote collection name.
type Config struct {
	Collection   string
	Strategy     merge.Strategy
	Debounce     time.Duration
	WriteTimeout time.Duration
	MaxRetries   uint64
}

// Orchestrator wires local store, merge engine and remote mirror for
// a single entity type T.
type Orchestrator[T models.Entity] struct {
	cfg    Config
	kv     *store.KV
	mirror remote.Mirror
	log    logging.Logger

	mu           sync.Mutex
	status       Status
	lastSyncedAt time.Time
	online       bool
	closed       bool
	timer        *time.Timer

	unsubMirror func()
	unsubLocal  func()
}

// New returns an orchestrator for the given collection. Zero config
// values fall back to the 2 s debounce window and a 30 s write
// timeout.
func New[T models.Entity](cfg Config, kv *store.KV, mirror remote.Mirror, log logging.Logger) *Orchestrator[T] {
	if cfg.Strategy == "" {
		cfg.Strategy = merge.ByID
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 2 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &Orchestrator[T]{
		cfg:    cfg,
		kv:     kv,
		mirror: mirror,
		log:    log.With("collection", cfg.Collection),
		status: StatusIdle,
		online: true,
	}
}

// Start subscribes to local mutations and, when a remote is
// configured, establishes the live remote subscription. With no
// remote the orchestrator stays in local-only mode forever; that is a
// valid steady state, not an error.
func (o *Orchestrator[T]) Start(ctx context.Context) error {
	o.unsubLocal = o.kv.Subscribe(o.cfg.Collection, o.onLocalChange)

	if !o.mirror.Enabled() {
		o.setStatus(StatusOffline)
		o.log.Info(ctx, "remote not configured, running local-only")
		return nil
	}

	o.setStatus(StatusSyncing)

	unsub, err := o.mirror.Subscribe(ctx, o.cfg.Collection, func(docs []remote.Doc) {
		o.applyRemote(ctx, docs)
	}, func(err error) {
		o.log.Error(ctx, "remote subscription failed", "error", err)
		o.setStatus(StatusError)
	})
	if err != nil {
		o.setStatus(StatusError)
		o.log.Error(ctx, "failed to subscribe", "error", err)
		return nil
	}
	o.unsubMirror = unsub
	return nil
}

// origin tags the orchestrator's own store writes so its local
// subscription can tell them apart from genuine application writes.
func (o *Orchestrator[T]) origin() string {
	return "sync/" + o.cfg.Collection
}

// applyRemote merges one full remote snapshot into the local store.
// Snapshots arrive serially from the mirror goroutine, so merges are
// applied in delivery order. When the merge keeps local-only entries
// the remote has never seen, an outbound write is scheduled so they
// reach the other clients; once pushed, the next snapshot contains
// them and the id comparison goes quiet.
func (o *Orchestrator[T]) applyRemote(ctx context.Context, docs []remote.Doc) {
	entities := decodeDocs[T](ctx, docs, o.log)

	merged, err := store.UpdateAs(ctx, o.kv, o.cfg.Collection, []T(nil), o.origin(), func(local []T) []T {
		return merge.Merge(local, entities, o.cfg.Strategy)
	})
	if err != nil {
		o.log.Error(ctx, "failed to apply remote snapshot", "error", err)
		o.setStatus(StatusError)
		return
	}

	o.mu.Lock()
	o.status = StatusSynced
	o.lastSyncedAt = time.Now()
	o.mu.Unlock()

	o.log.Info(ctx, "merged remote snapshot", "documents", len(entities))

	if hasLocalOnly(merged, entities) {
		o.log.Info(ctx, "merge kept entries unknown to remote, scheduling push")
		o.armDebounce()
	}
}

// hasLocalOnly reports whether merged holds ids absent from the
// delivered remote set. Ids only, not content; comparing payloads
// would ping-pong over normalization differences.
func hasLocalOnly[T models.Entity](merged, delivered []T) bool {
	ids := make(map[string]struct{}, len(delivered))
	for _, e := range delivered {
		ids[e.EntityID()] = struct{}{}
	}
	for _, e := range merged {
		if _, ok := ids[e.EntityID()]; !ok {
			return true
		}
	}
	return false
}

// onLocalChange runs on every write to the collection key. The
// orchestrator's own merge writes carry its origin tag and are
// skipped; echoing every merge straight back to the remote would loop
// forever.
func (o *Orchestrator[T]) onLocalChange(origin string) {
	if origin == o.origin() {
		return
	}
	o.armDebounce()
}

// armDebounce schedules an outbound flush, restarting the window when
// one is already pending.
func (o *Orchestrator[T]) armDebounce() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || !o.mirror.Enabled() {
		return
	}
	if !o.online {
		// Outbound writes are suppressed offline; reconnect flushes.
		return
	}

	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.cfg.Debounce, func() {
		o.Flush(context.Background())
	})
}

// Flush pushes the full current local snapshot to the remote mirror
// immediately, coalescing any pending debounced write. The write is
// bounded by the configured timeout and retried with backoff before
// the status degrades to error.
func (o *Orchestrator[T]) Flush(ctx context.Context) {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	enabled := o.mirror.Enabled()
	online := o.online
	closed := o.closed
	o.mu.Unlock()

	if !enabled || !online || closed {
		return
	}

	snapshot, err := store.Get(ctx, o.kv, o.cfg.Collection, []T(nil))
	if err != nil {
		o.log.Error(ctx, "failed to read local snapshot", "error", err)
		o.setStatus(StatusError)
		return
	}

	docs := encodeDocs(ctx, snapshot, o.log)

	o.setStatus(StatusSyncing)

	writeCtx, cancel := context.WithTimeout(ctx, o.cfg.WriteTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(o.cfg.MaxRetries, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(writeCtx, backoff, func(ctx context.Context) error {
		if err := o.mirror.ReplaceAll(ctx, o.cfg.Collection, docs); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		o.log.Error(ctx, "outbound sync failed", "error", err)
		o.setStatus(StatusError)
		return
	}

	o.mu.Lock()
	o.status = StatusSynced
	o.lastSyncedAt = time.Now()
	o.mu.Unlock()

	o.log.Info(ctx, "pushed local snapshot", "documents", len(docs))
}

// SetOnline feeds connectivity transitions into the state machine.
// Going offline suppresses outbound writes immediately; coming back
// online re-subscribes and pushes the current local state at once.
func (o *Orchestrator[T]) SetOnline(ctx context.Context, online bool) {
	o.mu.Lock()
	was := o.online
	o.online = online
	if !online && o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	closed := o.closed
	o.mu.Unlock()

	if closed || was == online {
		return
	}

	if !online {
		o.setStatus(StatusOffline)
		return
	}

	if o.mirror.Enabled() {
		o.resubscribe(ctx)
		o.Flush(ctx)
	}
}

func (o *Orchestrator[T]) resubscribe(ctx context.Context) {
	o.mu.Lock()
	unsub := o.unsubMirror
	o.unsubMirror = nil
	o.mu.Unlock()

	if unsub != nil {
		unsub()
	}

	o.setStatus(StatusSyncing)
	newUnsub, err := o.mirror.Subscribe(ctx, o.cfg.Collection, func(docs []remote.Doc) {
		o.applyRemote(ctx, docs)
	}, func(err error) {
		o.log.Error(ctx, "remote subscription failed", "error", err)
		o.setStatus(StatusError)
	})
	if err != nil {
		o.log.Error(ctx, "failed to resubscribe", "error", err)
		o.setStatus(StatusError)
		return
	}

	o.mu.Lock()
	o.unsubMirror = newUnsub
	o.mu.Unlock()
}

// Status returns the current sync status and the last successful sync
// instant (zero when nothing has synced yet).
func (o *Orchestrator[T]) Status() (Status, time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status, o.lastSyncedAt
}

// Close tears the orchestrator down: the pending debounced write, if
// any, is dropped, and no callback fires afterwards. Callers that
// want a final push must Flush before Close; an abrupt termination
// loses at most the last debounce window of unpushed changes.
func (o *Orchestrator[T]) Close() {
	o.mu.Lock()
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	unsubMirror := o.unsubMirror
	unsubLocal := o.unsubLocal
	o.unsubMirror = nil
	o.unsubLocal = nil
	o.mu.Unlock()

	if unsubMirror != nil {
		unsubMirror()
	}
	if unsubLocal != nil {
		unsubLocal()
	}
}

func (o *Orchestrator[T]) setStatus(s Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// PushOnce writes the current local snapshot of one collection to the
// remote mirror and returns. Short-lived commands use it to hand their
// writes off before the process exits; the long-running sync daemon
// keeps an orchestrator running via Start instead. A mirror failure is
// not an error for the caller: the data is safe locally and the next
// running orchestrator picks it up.
func PushOnce[T models.Entity](ctx context.Context, cfg Config, kv *store.KV, mirror remote.Mirror, log logging.Logger) {
	o := New[T](cfg, kv, mirror, log)
	defer o.Close()
	o.Flush(ctx)
}
