package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/OMEGA178/faktury/internal/logging"
)

const metadataField = "_syncMetadata"

// FirestoreMirror implements Mirror on top of a Firestore project.
type FirestoreMirror struct {
	client *firestore.Client
	origin string
	log    logging.Logger
	now    func() time.Time
}

// NewFirestoreMirror connects to the given Firebase project. origin
// tags outbound documents so other clients can tell who wrote them.
func NewFirestoreMirror(ctx context.Context, projectID, credentialsFile, origin string, log logging.Logger) (*FirestoreMirror, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	log.Info(ctx, "connected to Firestore", "project", projectID)

	return &FirestoreMirror{client: client, origin: origin, log: log, now: time.Now}, nil
}

// Close releases the underlying Firestore client.
func (m *FirestoreMirror) Close() error {
	return m.client.Close()
}

// Enabled implements Mirror.
func (m *FirestoreMirror) Enabled() bool { return true }

// Ping implements Mirror. A one-document read is enough to verify the
// project is reachable; an empty collection still answers.
func (m *FirestoreMirror) Ping(ctx context.Context) error {
	iter := m.client.Collection("_health").Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("remote unreachable: %w", err)
	}
	return nil
}

// Subscribe implements Mirror using a Firestore snapshot listener.
// The callback mutex guarantees that after the returned cancel
// function completes, no late delivery reaches the caller.
func (m *FirestoreMirror) Subscribe(ctx context.Context, collection string, onChange func([]Doc), onError func(error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	var mu sync.Mutex
	stopped := false

	unsubscribe := func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		cancel()
	}

	go func() {
		snaps := m.client.Collection(collection).Snapshots(ctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				mu.Lock()
				if !stopped {
					onError(err)
				}
				mu.Unlock()
				return
			}

			docSnaps, err := snap.Documents.GetAll()
			if err != nil {
				m.log.Warn(ctx, "failed to read snapshot documents", "collection", collection, "error", err)
				continue
			}

			docs := make([]Doc, 0, len(docSnaps))
			for _, doc := range docSnaps {
				data := doc.Data()
				delete(data, metadataField)
				docs = append(docs, Doc(data))
			}

			mu.Lock()
			if !stopped {
				onChange(docs)
			}
			mu.Unlock()
		}
	}()

	return unsubscribe, nil
}

// ReplaceAll implements Mirror: batch-delete every current document,
// then write docs keyed by their id field, each tagged with metadata.
func (m *FirestoreMirror) ReplaceAll(ctx context.Context, collection string, docs []Doc) error {
	ref := m.client.Collection(collection)

	batch := m.client.Batch()

	iter := ref.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list documents in %s: %w", collection, err)
		}
		batch.Delete(doc.Ref)
	}

	syncedAt := m.now().UTC().Format(time.RFC3339)
	for _, doc := range docs {
		id, ok := doc["id"].(string)
		if !ok || id == "" {
			m.log.Warn(ctx, "skipping document without id", "collection", collection)
			continue
		}
		batch.Set(ref.Doc(id), withMetadata(doc, syncedAt, m.origin))
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}

	m.log.Info(ctx, "replaced remote collection", "collection", collection, "documents", len(docs))
	return nil
}

func withMetadata(doc Doc, syncedAt, origin string) Doc {
	out := make(Doc, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out[metadataField] = map[string]interface{}{
		"lastSyncedAt": syncedAt,
		"syncedBy":     origin,
	}
	return out
}
