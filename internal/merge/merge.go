// Package merge reconciles a local and a remote collection of the
// same entity type into a deduplicated union. It is a pure function
// layer: no I/O, no clocks, no tombstones. Because an empty remote
// set performs no removals, a deletion done on one client can be
// resurrected by a merge against a stale client; callers must delete
// an id from both sides explicitly.
package merge

import "github.com/OMEGA178/faktury/internal/models"

// Strategy is the conflict-resolution rule applied on id collisions.
type Strategy string

const (
	// ByID treats the remote side as the source of truth: every id
	// present remotely overwrites the local version, while entries
	// that exist only locally (not yet propagated) are preserved.
	ByID Strategy = "by-id"

	// Append is first-writer-wins: local entries survive collisions.
	// Used where the remote collection is an additive log rather than
	// an authoritative mirror.
	Append Strategy = "append"
)

// Merge combines local and remote into a collection containing each
// identifier at most once. The result order is an implementation
// detail; callers must treat it as a set.
func Merge[T models.Entity](local, remote []T, strategy Strategy) []T {
	return combine(local, remote, strategy == ByID)
}

func combine[T models.Entity](local, remote []T, remoteWins bool) []T {
	index := make(map[string]int, len(local)+len(remote))
	out := make([]T, 0, len(local)+len(remote))

	for _, item := range local {
		if _, seen := index[item.EntityID()]; seen {
			continue
		}
		index[item.EntityID()] = len(out)
		out = append(out, item)
	}

	for _, item := range remote {
		pos, seen := index[item.EntityID()]
		if !seen {
			index[item.EntityID()] = len(out)
			out = append(out, item)
			continue
		}
		if remoteWins {
			out[pos] = item
		}
	}

	return out
}
