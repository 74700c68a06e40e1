package restorer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"restorebot/internal/constants"
	"restorebot/internal/models"
)

// Options is the immutable per-run configuration handed to the orchestrator
// and its collaborators. Constructed once from the environment (or from API
// overrides); never mutated during a run.
type Options struct {
	ConcurrencyLimit int
	DocumentCount    int
	StripSampleID    bool
	DropExisting     bool
}

// Normalize fills unset numeric options with their defaults.
func (o Options) Normalize() Options {
	if o.ConcurrencyLimit < 1 {
		o.ConcurrencyLimit = constants.DefaultConcurrencyLimit
	}
	if o.DocumentCount < 1 {
		o.DocumentCount = constants.DefaultSyntheticDocumentCount
	}
	return o
}

// RestorationOrchestrator drives the per-collection state machine
// (Loaded -> SourceSelected -> Populated -> Indexed -> Reported) for every
// discovered collection, under a bounded worker pool. Failures are isolated
// to their collection; the run continues regardless of any single outcome.
type RestorationOrchestrator struct {
	loader      MetadataLoader
	store       TargetStore
	synthesizer *DocumentSynthesizer
	rebuilder   *IndexRebuilder
	opts        Options

	active    int32
	highWater int32
}

func NewRestorationOrchestrator(loader MetadataLoader, store TargetStore, opts Options) *RestorationOrchestrator {
	return &RestorationOrchestrator{
		loader:      loader,
		store:       store,
		synthesizer: NewDocumentSynthesizer(),
		rebuilder:   NewIndexRebuilder(store),
		opts:        opts.Normalize(),
	}
}

// Run restores every discovered collection and aggregates a run summary.
// The only run-fatal conditions are an unreachable target store and a failed
// metadata discovery; everything else is a per-collection outcome.
// Cancelling ctx stops dispatching new collections; in-flight ones run to
// completion. Writes already committed are not rolled back.
func (o *RestorationOrchestrator) Run(ctx context.Context) (*models.RunSummary, error) {
	started := time.Now()

	if err := o.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("target store unreachable: %w", err)
	}

	descriptors, err := o.loader.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover metadata: %w", err)
	}
	log.Printf("RestorationOrchestrator -> Run -> Discovered %d collections, restoring with %d workers", len(descriptors), o.opts.ConcurrencyLimit)

	summary := &models.RunSummary{
		Status:           models.RunRunning,
		TotalCollections: len(descriptors),
		StartedAt:        started,
	}

	jobs := make(chan CollectionDescriptor)
	results := make(chan models.RestorationOutcome)

	var wg sync.WaitGroup
	for i := 0; i < o.opts.ConcurrencyLimit; i++ {
		wg.Add(1)
		go o.worker(ctx, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for _, desc := range descriptors {
			select {
			case jobs <- desc:
			case <-ctx.Done():
				log.Printf("RestorationOrchestrator -> Run -> Cancelled, no new collections will be dispatched")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		summary.Tally(outcome)
	}

	summary.DurationSeconds = time.Since(started).Seconds()
	if ctx.Err() != nil {
		summary.Status = models.RunCancelled
	} else {
		summary.Status = models.RunFinished
	}
	log.Printf("RestorationOrchestrator -> Run -> %s: %d complete, %d partial, %d failed in %.2fs",
		summary.Status, summary.Complete, summary.Partial, summary.Failed, summary.DurationSeconds)
	return summary, nil
}

// HighWaterMark reports the most collections that were mid-restoration
// simultaneously. Never exceeds the configured concurrency limit.
func (o *RestorationOrchestrator) HighWaterMark() int {
	return int(atomic.LoadInt32(&o.highWater))
}

func (o *RestorationOrchestrator) worker(ctx context.Context, jobs <-chan CollectionDescriptor, results chan<- models.RestorationOutcome, wg *sync.WaitGroup) {
	defer wg.Done()
	for desc := range jobs {
		n := atomic.AddInt32(&o.active, 1)
		for {
			h := atomic.LoadInt32(&o.highWater)
			if n <= h || atomic.CompareAndSwapInt32(&o.highWater, h, n) {
				break
			}
		}
		results <- o.restoreCollection(ctx, desc)
		atomic.AddInt32(&o.active, -1)
	}
}

// restoreCollection runs one collection's full state machine to completion.
func (o *RestorationOrchestrator) restoreCollection(ctx context.Context, desc CollectionDescriptor) models.RestorationOutcome {
	outcome := models.RestorationOutcome{
		Database:   desc.Database,
		Collection: desc.Collection,
	}

	// Loaded
	bundle, err := o.loader.Load(desc)
	if err != nil {
		log.Printf("RestorationOrchestrator -> restoreCollection -> Failed to load bundle for %s.%s: %v", desc.Database, desc.Collection, err)
		outcome.Status = models.RestorationFailed
		outcome.Reason = err.Error()
		return outcome
	}

	// SourceSelected
	var docs []bson.M
	switch {
	case bundle.HasSample():
		// A captured sample always wins over synthesis; it is inserted
		// as-is, optionally with its original identifier stripped so the
		// target store assigns a fresh one.
		outcome.Source = "sample"
		doc := bundle.SampleDocument
		if o.opts.StripSampleID {
			doc = stripIdentifier(doc)
		}
		docs = []bson.M{doc}
	case bundle.HasSchema():
		outcome.Source = "schema"
		var fieldErrors []FieldError
		docs, fieldErrors = o.synthesizer.Build(bundle.Schema, o.opts.DocumentCount)
		for _, fe := range fieldErrors {
			outcome.FieldErrors = append(outcome.FieldErrors, fe.Error())
		}
	default:
		outcome.Status = models.RestorationFailed
		outcome.Reason = ErrNoRestorableSource.Error()
		return outcome
	}
	log.Printf("RestorationOrchestrator -> restoreCollection -> Restoring %s.%s from %s (%d documents)", desc.Database, desc.Collection, outcome.Source, len(docs))

	// Populated
	if o.opts.DropExisting {
		if err := o.store.DropCollection(ctx, desc.Database, desc.Collection); err != nil {
			outcome.Status = models.RestorationFailed
			outcome.Reason = fmt.Sprintf("failed to drop existing collection: %v", err)
			return outcome
		}
	}
	if err := o.store.InsertDocuments(ctx, desc.Database, desc.Collection, docs); err != nil {
		// Nothing was restored, so index rebuild is skipped.
		log.Printf("RestorationOrchestrator -> restoreCollection -> Insertion failed for %s.%s: %v", desc.Database, desc.Collection, err)
		outcome.Status = models.RestorationFailed
		outcome.Reason = fmt.Sprintf("insertion failed: %v", err)
		return outcome
	}
	outcome.DocumentsInserted = len(docs)

	// Indexed
	outcome.Indexes = o.rebuilder.Apply(ctx, desc.Database, desc.Collection, bundle.Indexes)
	indexFailed := false
	for _, idx := range outcome.Indexes {
		if !idx.Created {
			indexFailed = true
			break
		}
	}

	// Reported
	if indexFailed || len(outcome.FieldErrors) > 0 {
		outcome.Status = models.RestorationPartial
	} else {
		outcome.Status = models.RestorationComplete
	}
	return outcome
}

// stripIdentifier returns a shallow copy of the sample without its original
// _id, avoiding a collision with a previous restoration of the collection.
func stripIdentifier(doc bson.M) bson.M {
	stripped := make(bson.M, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		stripped[k] = v
	}
	return stripped
}
