package syncer

import (
	"context"
	"encoding/json"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/remote"
)

// decodeDocs converts raw remote documents into entities. A document
// that does not decode, or decodes but fails validation, is excluded
// from the result and logged; a half-formed record must never enter
// the merge.
func decodeDocs[T models.Entity](ctx context.Context, docs []remote.Doc, log logging.Logger) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			log.Warn(ctx, "skipping unencodable remote document", "error", err)
			continue
		}
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			log.Warn(ctx, "skipping malformed remote document", "error", err)
			continue
		}
		if err := entity.Validate(); err != nil {
			log.Warn(ctx, "skipping invalid remote document", "error", err)
			continue
		}
		out = append(out, entity)
	}
	return out
}

// encodeDocs converts local entities into raw documents for the
// outbound write path.
func encodeDocs[T models.Entity](ctx context.Context, entities []T, log logging.Logger) []remote.Doc {
	out := make([]remote.Doc, 0, len(entities))
	for _, entity := range entities {
		raw, err := json.Marshal(entity)
		if err != nil {
			log.Warn(ctx, "skipping unencodable local entity", "id", entity.EntityID(), "error", err)
			continue
		}
		var doc remote.Doc
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Warn(ctx, "skipping undecodable local entity", "id", entity.EntityID(), "error", err)
			continue
		}
		out = append(out, doc)
	}
	return out
}
