package syncer

import (
	"context"
	"time"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/remote"
)

// OnlineTarget is anything that wants connectivity transitions, i.e.
// the per-collection orchestrators.
type OnlineTarget interface {
	SetOnline(ctx context.Context, online bool)
}

// Watcher periodically pings the remote mirror and fans connectivity
// transitions out to its targets.
type Watcher struct {
	mirror  remote.Mirror
	targets []OnlineTarget
	log     logging.Logger
	online  bool
}

// NewWatcher returns a watcher over mirror for the given targets.
func NewWatcher(mirror remote.Mirror, log logging.Logger, targets ...OnlineTarget) *Watcher {
	return &Watcher{mirror: mirror, targets: targets, log: log, online: true}
}

// Run probes connectivity every interval until ctx is cancelled. It
// only notifies targets on transitions, never on steady state.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	if !w.mirror.Enabled() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := w.mirror.Ping(pingCtx)
			cancel()

			w.apply(ctx, err == nil)

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) apply(ctx context.Context, online bool) {
	if w.online == online {
		return
	}
	w.online = online

	if online {
		w.log.Info(ctx, "connection restored, resuming sync")
	} else {
		w.log.Warn(ctx, "connection lost, working offline")
	}

	for _, t := range w.targets {
		t.SetOnline(ctx, online)
	}
}
