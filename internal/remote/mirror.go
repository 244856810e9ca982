// Package remote mirrors entity collections to a shared Firestore
// project. The mirror is passive: subscriptions deliver the complete
// current document set on every remote change (never deltas), and the
// write path replaces the entire remote collection with a given set.
// When no remote is configured the mirror degrades to permanent
// no-ops; local operation must never depend on it.
package remote

import "context"

// Doc is one remote document: the entity fields as stored in the
// collection, with sync metadata already stripped on the way in.
type Doc map[string]interface{}

// Mirror is the remote side of the sync layer.
type Mirror interface {
	// Subscribe starts a live listener on the collection. onChange
	// receives the full current document set on every remote change.
	// The returned function cancels the subscription; once it returns,
	// neither callback is invoked again.
	Subscribe(ctx context.Context, collection string, onChange func([]Doc), onError func(error)) (func(), error)

	// ReplaceAll deletes every existing document in the collection and
	// writes docs in its place, tagging each with sync metadata. A
	// full replace, not a patch: there is no per-document dirty
	// tracking anywhere in the system.
	ReplaceAll(ctx context.Context, collection string, docs []Doc) error

	// Ping probes remote reachability.
	Ping(ctx context.Context) error

	// Enabled reports whether a remote is configured at all.
	Enabled() bool
}

// Disabled is the mirror used when Firebase is not configured: every
// operation is a cheap no-op and the application runs local-only.
type Disabled struct{}

// Subscribe implements Mirror. It never delivers anything.
func (Disabled) Subscribe(context.Context, string, func([]Doc), func(error)) (func(), error) {
	return func() {}, nil
}

// ReplaceAll implements Mirror.
func (Disabled) ReplaceAll(context.Context, string, []Doc) error { return nil }

// Ping implements Mirror.
func (Disabled) Ping(context.Context) error { return nil }

// Enabled implements Mirror.
func (Disabled) Enabled() bool { return false }
