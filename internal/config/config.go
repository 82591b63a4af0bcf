package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the immutable run configuration. It is built once in main and
// threaded explicitly through the pipeline; no component reads the
// environment on its own.
type Config struct {
	InputFolder string
	OutputFile  string
	ReportFile  string // optional xlsx workbook, "" disables

	Clusters      int // requested cluster count; reduced for small corpora
	SVDComponents int // embedding dimensionality after reduction
	Seed          int64

	DedupExact bool // collapse records with identical (keyword, normalized text)

	MinConfidence float64 // below this the funnel label is kept but flagged low

	OracleTimeout time.Duration
	OracleRetries int

	Workers int // annotator worker pool size

	EntityTaggerURL string
	FunnelScorerURL string
	UseMockOracles  bool
}

// FromEnv builds a Config from environment variables with the defaults of a
// standard run (seed 42, 3 clusters). godotenv loading happens in main.
func FromEnv() Config {
	return Config{
		InputFolder:     envOr("INPUT_FOLDER", "data/input"),
		OutputFile:      envOr("OUTPUT_FILE", "data/output/questions_final.csv"),
		ReportFile:      os.Getenv("REPORT_FILE"),
		Clusters:        envInt("NUM_CLUSTERS", 3),
		SVDComponents:   envInt("SVD_COMPONENTS", 50),
		Seed:            int64(envInt("RANDOM_SEED", 42)),
		DedupExact:      envOr("DEDUP_EXACT", "true") == "true",
		MinConfidence:   envFloat("MIN_CONFIDENCE", 0.3),
		OracleTimeout:   time.Duration(envInt("ORACLE_TIMEOUT_SEC", 12)) * time.Second,
		OracleRetries:   envInt("ORACLE_RETRIES", 1),
		Workers:         envInt("WORKERS", 4),
		EntityTaggerURL: os.Getenv("ENTITY_TAGGER_URL"),
		FunnelScorerURL: os.Getenv("FUNNEL_SCORER_URL"),
		UseMockOracles:  os.Getenv("USE_MOCK_ORACLES") == "true",
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
