package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"query-insights-go/internal/config"
	"query-insights-go/internal/entity"
	"query-insights-go/internal/export"
	"query-insights-go/internal/funnel"
	"query-insights-go/internal/logger"
	"query-insights-go/internal/pipeline"
	"query-insights-go/internal/report"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "query-insights-go").Info("starting run")

	cfg := config.FromEnv()
	log.WithField("input_folder", cfg.InputFolder).
		WithField("clusters", cfg.Clusters).
		WithField("seed", cfg.Seed).Info("configuration loaded")

	oracles := pipeline.Oracles{
		Tagger: entity.NewHTTPTagger(cfg.EntityTaggerURL, cfg.OracleTimeout, cfg.OracleRetries),
		Scorer: funnel.NewHTTPScorer(cfg.FunnelScorerURL, cfg.OracleTimeout, cfg.OracleRetries),
	}
	if cfg.UseMockOracles {
		log.Info("mock oracle mode ON - offline deterministic annotation")
		oracles = pipeline.Oracles{
			Tagger: entity.NewMockTagger(),
			Scorer: funnel.NewMockScorer(),
		}
	}

	start := time.Now()
	res, err := pipeline.Run(context.Background(), cfg, oracles)
	if err != nil {
		log.WithError(err).Fatal("pipeline failed")
	}
	log.WithField("duration_ms", time.Since(start).Milliseconds()).
		WithField("processed", res.Summary.Processed).
		WithField("ingest_drops", res.Summary.IngestDrops).
		WithField("normalize_drops", res.Summary.NormalizeDrops).
		WithField("degradations", res.Summary.DegradationFlags).Info("pipeline finished")

	if err := export.WriteCSV(cfg.OutputFile, res.Records); err != nil {
		log.WithError(err).Fatal("write output table")
	}
	log.WithField("output", cfg.OutputFile).Info("output table written")

	if cfg.ReportFile != "" {
		if err := export.WriteWorkbook(cfg.ReportFile, res.Records, res.Summary); err != nil {
			log.WithError(err).Fatal("write report workbook")
		}
		log.WithField("report", cfg.ReportFile).Info("report workbook written")
	}

	for _, sc := range report.FunnelDistribution(res.Records) {
		log.WithField("stage", string(sc.Stage)).WithField("count", sc.Count).Info("funnel distribution")
	}
	for cl, samples := range report.SampleQuestions(res.Records, 3, cfg.Seed) {
		for _, q := range samples {
			log.WithField("cluster", cl).WithField("sample", q).Info("sample question")
		}
	}
}
