// Command pipeline runs the canonicalization pipeline over a pre-fetched
// batch file and prints canonical table counts plus per-scope validation
// reports as JSON. Fetching, rendering, and storage belong to the surrounding
// orchestration, not here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/config"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/extract"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/logging"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/usecase"
)

type batchFile struct {
	Sources []sourceEntry `json:"sources"`
}

type sourceEntry struct {
	Key       string              `json:"key"`
	Type      string              `json:"type"`
	Region    string              `json:"region"`
	Country   string              `json:"country"`
	State     string              `json:"state"`
	BaseURL   string              `json:"base_url"`
	Organizer string              `json:"organizer"`
	Season    string              `json:"season"`
	Gender    string              `json:"gender"`
	Level     string              `json:"level"`
	FetchedAt time.Time           `json:"fetched_at"`
	Documents []documentEntry     `json:"documents"`
	Teams     []map[string]string `json:"teams"`
	Games     []map[string]string `json:"games"`
	Box       []map[string]string `json:"box"`
	Rosters   []map[string]string `json:"rosters"`
	Events    []map[string]string `json:"events"`
}

type documentEntry struct {
	URL     string   `json:"url"`
	Layouts []string `json:"layouts"`
	Body    []byte   `json:"body"`
	Text    string   `json:"text"`
}

type output struct {
	Batch            usecase.BatchResult      `json:"batch"`
	DimSourceCount   int                      `json:"dim_source_count"`
	DimCompetitionCt int                      `json:"dim_competition_count"`
	DimTeamCount     int                      `json:"dim_team_count"`
	FactGameCount    int                      `json:"fact_game_count"`
	FactBoxCount     int                      `json:"fact_box_count"`
	FactRosterCount  int                      `json:"fact_roster_count"`
	FactEventCount   int                      `json:"fact_event_count"`
	Reports          []usecase.ReportEnvelope `json:"reports"`
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON batch file of pre-fetched documents")
	maxList := flag.Int("max-list", 10, "violations listed per check in the printed report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	if cfg.AppEnv == config.EnvDev {
		logger = logging.NewDevelopment(cfg.LogLevel)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	if *inputPath == "" {
		logger.Error("missing -input path")
		os.Exit(2)
	}
	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		logger.Error("read batch file", "error", err)
		os.Exit(1)
	}
	var batch batchFile
	if err := sonic.Unmarshal(raw, &batch); err != nil {
		logger.Error("decode batch file", "error", err)
		os.Exit(1)
	}

	mergeService := usecase.NewMergeService(logger)
	validationService := usecase.NewValidationService(usecase.ValidationConfigFrom(cfg), logger)
	pipeline := usecase.NewPipelineService(cfg, mergeService, validationService, logger)

	result, err := pipeline.RunBatch(context.Background(), toBatchInput(batch))
	if err != nil {
		logger.Error("run batch", "error", err)
		os.Exit(1)
	}

	out := output{
		Batch:            result,
		DimSourceCount:   len(result.Tables.DimSource),
		DimCompetitionCt: len(result.Tables.DimCompetition),
		DimTeamCount:     len(result.Tables.DimTeam),
		FactGameCount:    len(result.Tables.FactGame),
		FactBoxCount:     len(result.Tables.FactBox),
		FactRosterCount:  len(result.Tables.FactRoster),
		FactEventCount:   len(result.Tables.FactEvent),
	}
	for _, report := range result.Reports {
		out.Reports = append(out.Reports, report.Envelope(cfg.HealthyThreshold, *maxList))
	}

	encoded, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func toBatchInput(batch batchFile) usecase.BatchInput {
	input := usecase.BatchInput{}
	for _, entry := range batch.Sources {
		sourceBatch := usecase.SourceBatch{
			Meta: usecase.SourceMetaInput{
				SourceKey:  entry.Key,
				SourceType: entry.Type,
				Region:     entry.Region,
				Country:    entry.Country,
				State:      entry.State,
				BaseURL:    entry.BaseURL,
				FetchedAt:  entry.FetchedAt,
				Organizer:  entry.Organizer,
				Season:     entry.Season,
				Gender:     entry.Gender,
				Level:      entry.Level,
			},
			Teams:   toRows(entry.Teams),
			Games:   toRows(entry.Games),
			Box:     toRows(entry.Box),
			Rosters: toRows(entry.Rosters),
			Events:  toRows(entry.Events),
		}
		for _, doc := range entry.Documents {
			layouts := make([]extract.Layout, 0, len(doc.Layouts))
			for _, layout := range doc.Layouts {
				layouts = append(layouts, extract.Layout(layout))
			}
			sourceBatch.Documents = append(sourceBatch.Documents, usecase.DocumentInput{
				URL:     doc.URL,
				Layouts: layouts,
				Body:    doc.Body,
				Text:    doc.Text,
			})
		}
		input.Sources = append(input.Sources, sourceBatch)
	}
	return input
}

func toRows(rows []map[string]string) []usecase.RawRow {
	out := make([]usecase.RawRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.RawRow(row))
	}
	return out
}
