package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/config"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/dataset"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/game"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/extract"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/logging"
)

const (
	sourceStatusSuccess = "success"
	sourceStatusPartial = "partial"
	sourceStatusFailed  = "failed"
)

// DocumentInput is one pre-fetched raw document plus its layout hints. A
// document may carry several hints; results from all of them are merged.
type DocumentInput struct {
	URL     string
	Layouts []extract.Layout
	Body    []byte
	Text    string
}

// SourceBatch is everything the batch carries for one source: static metadata,
// raw documents to extract, and any tables an adapter already extracted.
type SourceBatch struct {
	Meta      SourceMetaInput `validate:"required"`
	Documents []DocumentInput
	Grammar   extract.GrammarConfig
	Teams     []RawRow
	Games     []RawRow
	Box       []RawRow
	Rosters   []RawRow
	Events    []RawRow
}

type BatchInput struct {
	Sources []SourceBatch `validate:"min=1,dive"`
	// MaxWorkers overrides the configured pool bound when positive.
	MaxWorkers int
}

// SourceOutcome reports one source's fate. The batch always completes: a bad
// document or source degrades its own outcome and never aborts the other N-1.
type SourceOutcome struct {
	SourceKey       string `json:"source_key"`
	Status          string `json:"status"`
	Documents       int    `json:"documents"`
	FailedDocuments int    `json:"failed_documents"`
	Games           int    `json:"games"`
	Teams           int    `json:"teams"`
	DurationMs      int64  `json:"duration_ms"`
	Message         string `json:"message,omitempty"`
}

type BatchResult struct {
	SourceCount  int                `json:"source_count"`
	SuccessCount int                `json:"success_count"`
	PartialCount int                `json:"partial_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Sources      []SourceOutcome    `json:"sources"`
	Tables       dataset.Unified    `json:"-"`
	Reports      []ValidationReport `json:"reports"`
}

// PipelineService runs the full extract-merge-validate pipeline over a batch
// of independent sources. Per-source work is embarrassingly parallel and runs
// on a bounded pool; the final dimension merge is a single-threaded fold so
// the accumulating tables never need locks.
type PipelineService struct {
	merge      *MergeService
	validation *ValidationService
	validate   *validator.Validate
	maxWorkers int
	logger     *logging.Logger
}

func NewPipelineService(cfg config.Config, merge *MergeService, validation *ValidationService, logger *logging.Logger) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &PipelineService{
		merge:      merge,
		validation: validation,
		validate:   validator.New(),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (s *PipelineService) RunBatch(ctx context.Context, input BatchInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.RunBatch")
	defer span.End()

	if len(input.Sources) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	if err := s.validate.Struct(input); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	seen := make(map[string]struct{}, len(input.Sources))
	for _, batch := range input.Sources {
		if _, dup := seen[batch.Meta.SourceKey]; dup {
			return BatchResult{}, fmt.Errorf("%w: duplicate source key %q", ErrInvalidInput, batch.Meta.SourceKey)
		}
		seen[batch.Meta.SourceKey] = struct{}{}
	}

	workerCount := min(s.maxWorkers, len(input.Sources))
	if input.MaxWorkers > 0 {
		workerCount = min(input.MaxWorkers, len(input.Sources))
	}

	type sourceResult struct {
		key     string
		partial dataset.Unified
		outcome SourceOutcome
	}
	results := make(chan sourceResult, len(input.Sources))

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, batch := range input.Sources {
		batch := batch
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			partial, outcome := s.processSource(ctx, batch)
			results <- sourceResult{key: batch.Meta.SourceKey, partial: partial, outcome: outcome}
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit source to worker pool: %w", err)
		}
	}
	workers.Wait()
	close(results)

	partials := make(map[string]dataset.Unified, len(input.Sources))
	outcomes := make(map[string]SourceOutcome, len(input.Sources))
	for res := range results {
		partials[res.key] = res.partial
		outcomes[res.key] = res.outcome
	}

	// Fold partials in sorted key order so last-write-wins deduplication is
	// identical no matter which goroutine finished first.
	keys := make([]string, 0, len(partials))
	for key := range partials {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := BatchResult{
		SourceCount: len(input.Sources),
		WorkerCount: workerCount,
	}
	ordered := make([]dataset.Unified, 0, len(keys))
	for _, key := range keys {
		ordered = append(ordered, partials[key])
		outcome := outcomes[key]
		result.Sources = append(result.Sources, outcome)
		switch outcome.Status {
		case sourceStatusSuccess:
			result.SuccessCount++
		case sourceStatusPartial:
			result.PartialCount++
		default:
			result.FailedCount++
		}
	}
	result.Tables = s.merge.MergePartials(ordered...)
	result.Reports = s.validateScopes(ctx, result.Tables, workerCount)
	return result, nil
}

// processSource extracts every document for one source and builds its partial
// tables. Extraction failures degrade the outcome; they never propagate.
func (s *PipelineService) processSource(ctx context.Context, batch SourceBatch) (dataset.Unified, SourceOutcome) {
	start := time.Now()
	outcome := SourceOutcome{
		SourceKey: batch.Meta.SourceKey,
		Documents: len(batch.Documents),
	}

	gameRows := make([]RawRow, 0, len(batch.Games))
	gameRows = append(gameRows, batch.Games...)

	for _, doc := range batch.Documents {
		matchups, err := extract.Run(extract.Document{
			SourceURL: doc.URL,
			Body:      doc.Body,
			Text:      doc.Text,
		}, doc.Layouts, batch.Grammar)
		if err != nil {
			outcome.FailedDocuments++
			if outcome.Message == "" {
				outcome.Message = fmt.Sprintf("document %s: %v", doc.URL, err)
			}
			s.logger.WarnContext(ctx, "document extraction failed",
				"source", batch.Meta.SourceKey,
				"url", doc.URL,
				"malformed", extract.IsMalformedInput(err),
				"error", err,
			)
			continue
		}
		for _, matchup := range matchups {
			gameRows = append(gameRows, matchupToRow(matchup))
		}
	}

	tables := SourceTables{
		Meta:    batch.Meta,
		Teams:   batch.Teams,
		Games:   gameRows,
		Box:     batch.Box,
		Rosters: batch.Rosters,
		Events:  batch.Events,
	}
	partial := s.merge.BuildSource(ctx, tables)

	outcome.Games = len(partial.FactGame)
	outcome.Teams = len(partial.DimTeam)
	outcome.DurationMs = time.Since(start).Milliseconds()
	switch {
	case outcome.Documents > 0 && outcome.FailedDocuments == outcome.Documents && outcome.Games == 0 && outcome.Teams == 0:
		outcome.Status = sourceStatusFailed
	case outcome.FailedDocuments > 0:
		outcome.Status = sourceStatusPartial
	default:
		outcome.Status = sourceStatusSuccess
	}
	return partial, outcome
}

// validateScopes partitions the merged game set by (source, season) and scores
// each partition. Scopes are independent, so they fan out on a bounded pool
// and land in pre-assigned slots to keep report order deterministic.
func (s *PipelineService) validateScopes(ctx context.Context, tables dataset.Unified, workerCount int) []ValidationReport {
	type scopeKey struct {
		sourceID string
		season   string
	}
	grouped := make(map[scopeKey][]game.Game)
	for _, g := range tables.FactGame {
		key := scopeKey{sourceID: g.SourceID, season: g.Season}
		grouped[key] = append(grouped[key], g)
	}
	if len(grouped) == 0 {
		return nil
	}

	keys := make([]scopeKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sourceID != keys[j].sourceID {
			return keys[i].sourceID < keys[j].sourceID
		}
		return keys[i].season < keys[j].season
	})

	reports := make([]ValidationReport, len(keys))
	scopePool := pool.New().WithMaxGoroutines(min(workerCount, len(keys)))
	for i, key := range keys {
		i, key := i, key
		scopePool.Go(func() {
			reports[i] = s.validation.Validate(ctx, ValidateInput{
				Scope:  key.sourceID,
				Season: key.season,
				Games:  grouped[key],
			})
		})
	}
	scopePool.Wait()
	return reports
}

func matchupToRow(matchup extract.RawMatchup) RawRow {
	row := RawRow{
		"team_a": matchup.TeamA,
		"team_b": matchup.TeamB,
	}
	if matchup.ScoreA != nil {
		row["score_a"] = strconv.Itoa(*matchup.ScoreA)
	}
	if matchup.ScoreB != nil {
		row["score_b"] = strconv.Itoa(*matchup.ScoreB)
	}
	if matchup.RoundLabel != "" {
		row["round"] = matchup.RoundLabel
	}
	for key, value := range matchup.Extra {
		if _, taken := row[key]; !taken && value != "" {
			row[key] = value
		}
	}
	return row
}
