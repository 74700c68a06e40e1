package restorer

import (
	"context"
	"log"

	"restorebot/internal/models"
)

// IndexRebuilder replays captured index specifications against a target
// collection. Every spec is applied independently: one index failing (a
// duplicate name, an invalid key pattern) never prevents the rest.
type IndexRebuilder struct {
	store TargetStore
}

func NewIndexRebuilder(store TargetStore) *IndexRebuilder {
	return &IndexRebuilder{store: store}
}

// Apply creates each index and returns a per-index outcome. The aggregate
// feeds the collection's partial classification if any index failed.
func (r *IndexRebuilder) Apply(ctx context.Context, database, collection string, indexes []models.IndexSpec) []models.IndexOutcome {
	outcomes := make([]models.IndexOutcome, 0, len(indexes))
	for _, spec := range indexes {
		outcome := models.IndexOutcome{Name: spec.Name, Created: true}
		if err := r.store.CreateIndex(ctx, database, collection, spec); err != nil {
			log.Printf("IndexRebuilder -> Apply -> Failed to create index %s on %s.%s: %v", spec.Name, database, collection, err)
			outcome.Created = false
			outcome.Error = err.Error()
		} else {
			log.Printf("IndexRebuilder -> Apply -> Created index %s on %s.%s", spec.Name, database, collection)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
