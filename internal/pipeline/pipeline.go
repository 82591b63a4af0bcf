// Package pipeline wires the stages together: ingest, normalize, the three
// independent per-record annotators, the batch clustering barrier, and the
// final aggregation. Annotators run concurrently across a bounded worker
// pool; record identity is preserved by index so aggregation never depends
// on completion order.
package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"query-insights-go/internal/aggregate"
	"query-insights-go/internal/cluster"
	"query-insights-go/internal/config"
	"query-insights-go/internal/entity"
	"query-insights-go/internal/funnel"
	"query-insights-go/internal/ingest"
	"query-insights-go/internal/logger"
	"query-insights-go/internal/normalize"
	"query-insights-go/internal/question"
	"query-insights-go/internal/types"
)

// Oracles are the read-only external model handles shared by all workers.
type Oracles struct {
	Tagger entity.Tagger
	Scorer funnel.Scorer
}

// Result is the structured run outcome handed back to the caller. Exit
// codes are the caller's business.
type Result struct {
	RunID   string
	Records []types.LabeledRecord
	Summary types.RunSummary
	Scatter [][2]float64 // 2-D projection per record, for the scatter view
}

// Run executes one full pipeline pass over the configured input folder.
func Run(ctx context.Context, cfg config.Config, o Oracles) (Result, error) {
	runID := uuid.New().String()
	log := logger.New().WithRun(runID).WithField("component", "pipeline")

	files, err := ingest.Discover(cfg.InputFolder)
	if err != nil {
		return Result{}, err
	}
	log.WithField("files", len(files)).Info("input files discovered")
	return RunFiles(ctx, cfg, o, runID, files)
}

// RunFiles is Run with an explicit file list, which is also the test seam.
func RunFiles(ctx context.Context, cfg config.Config, o Oracles, runID string, files []string) (Result, error) {
	if runID == "" {
		runID = uuid.New().String()
	}
	log := logger.New().WithRun(runID).WithField("component", "pipeline")

	ing := ingest.LoadAll(files)
	log.WithField("records", len(ing.Records)).WithField("ingest_drops", ing.RowsDropped).Info("ingestion complete")

	cleaned, normDrops := normalize.CleanAll(ing.Records)
	dupDrops := 0
	if cfg.DedupExact {
		cleaned, dupDrops = normalize.DedupExact(cleaned)
	}
	log.WithField("records", len(cleaned)).WithField("normalize_drops", normDrops).
		WithField("duplicate_drops", dupDrops).Info("normalization complete")

	annotations, degradations, err := annotateAll(ctx, cfg, o, runID, cleaned)
	if err != nil {
		return Result{}, err
	}

	// clustering is a batch barrier: every cleaned record passes through in
	// one fitted transform
	corpus := make([]string, len(cleaned))
	for i, r := range cleaned {
		corpus[i] = normalize.FilterStopwords(r.NormalizedText)
	}
	cres, err := cluster.Run(corpus, cluster.Options{
		Clusters:   cfg.Clusters,
		Components: cfg.SVDComponents,
		Seed:       cfg.Seed,
		Vectorizer: cluster.VectorizerOptions{Bigrams: true},
	})
	if err != nil {
		return Result{}, err
	}
	if cres.Empty {
		degradations = append(degradations, types.DegradedEmptyCorpus)
	}

	ids := make([]string, len(cleaned))
	for i, r := range cleaned {
		ids[i] = r.ID
	}
	records, summary, err := aggregate.Merge(aggregate.Input{
		Records:        cleaned,
		IDs:            ids,
		Annotations:    annotations,
		Clusters:       cres.Assignments,
		FilesRead:      ing.FilesRead,
		FilesSkipped:   ing.FilesSkipped,
		IngestDrops:    ing.RowsDropped,
		NormalizeDrops: normDrops,
		DuplicateDrops: dupDrops,
		Degradations:   degradations,
	})
	if err != nil {
		return Result{}, err
	}

	log.WithField("processed", summary.Processed).
		WithField("degradations", summary.DegradationFlags).Info("run complete")
	return Result{RunID: runID, Records: records, Summary: summary, Scatter: cres.Scatter}, nil
}

// annotateAll runs question typing plus both oracle annotators over the
// records with a bounded worker pool. Output is index-aligned with the
// input; oracle outages degrade the affected field and set a run flag.
func annotateAll(ctx context.Context, cfg config.Config, o Oracles, runID string, records []types.CleanedRecord) ([]types.Annotation, []string, error) {
	log := logger.New().WithRun(runID).WithField("component", "annotate")

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	annotations := make([]types.Annotation, len(records))
	var (
		wg             sync.WaitGroup
		mu             sync.Mutex
		firstErr       error
		taggerDegraded bool
		scorerDegraded bool
		taggerLogOnce  sync.Once
		scorerLogOnce  sync.Once
	)

	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec := records[i]
				ann := types.Annotation{
					QuestionType: question.Classify(rec.NormalizedText),
					Entities:     []types.Entity{},
				}

				ents, degraded, err := entity.Annotate(ctx, o.Tagger, rec.NormalizedText)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				if degraded {
					taggerLogOnce.Do(func() {
						log.Warn("entity tagger unavailable, continuing without entities")
					})
					mu.Lock()
					taggerDegraded = true
					mu.Unlock()
				}
				ann.Entities = ents

				pred, degraded, err := funnel.Annotate(ctx, o.Scorer, rec.NormalizedText)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				if degraded {
					scorerLogOnce.Do(func() {
						log.Warn("funnel scorer unavailable, defaulting stage")
					})
					mu.Lock()
					scorerDegraded = true
					mu.Unlock()
				}
				ann.FunnelStage = pred.Stage
				ann.FunnelConfidence = pred.Confidence
				if pred.Confidence < cfg.MinConfidence {
					log.WithField("record", rec.ID).WithField("confidence", pred.Confidence).
						Debug("funnel label below confidence threshold")
				}

				annotations[i] = ann
			}
		}()
	}

	for i := range records {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}
	var degradations []string
	if taggerDegraded {
		degradations = append(degradations, types.DegradedEntityTagger)
	}
	if scorerDegraded {
		degradations = append(degradations, types.DegradedFunnelScorer)
	}
	return annotations, degradations, nil
}
