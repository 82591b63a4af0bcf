// Package export writes the final labeled table. Thin collaborators: a flat
// CSV matching the questions_final layout, and an optional XLSX workbook
// with a records sheet plus a summary sheet.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"query-insights-go/internal/report"
	"query-insights-go/internal/types"
)

var csvHeader = []string{
	"title", "normalized_text", "keyword", "source_file", "question_type",
	"question_length", "entities", "funnel_stage", "funnel_confidence",
	"cluster_id", "distance_to_centroid",
}

// WriteCSV writes one row per labeled record. Entities serialize as JSON.
func WriteCSV(path string, records []types.LabeledRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func row(r types.LabeledRecord) []string {
	ents, _ := json.Marshal(r.Entities)
	return []string{
		r.Title,
		r.NormalizedText,
		r.Keyword,
		r.SourceFile,
		string(r.QuestionType),
		strconv.Itoa(r.QuestionLength),
		string(ents),
		string(r.FunnelStage),
		strconv.FormatFloat(r.FunnelConfidence, 'f', 4, 64),
		strconv.Itoa(r.ClusterID),
		strconv.FormatFloat(r.DistanceToCentroid, 'f', 4, 64),
	}
}

// WriteWorkbook writes the records plus the run summary into an XLSX file.
func WriteWorkbook(path string, records []types.LabeledRecord, summary types.RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	const recSheet = "Records"
	f.SetSheetName(f.GetSheetName(0), recSheet)
	for col, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(recSheet, cell, h)
	}
	for i, r := range records {
		for col, v := range row(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(recSheet, cell, v)
		}
	}

	const sumSheet = "Summary"
	if _, err := f.NewSheet(sumSheet); err != nil {
		return err
	}
	line := 1
	put := func(k string, v any) {
		f.SetCellValue(sumSheet, "A"+strconv.Itoa(line), k)
		f.SetCellValue(sumSheet, "B"+strconv.Itoa(line), v)
		line++
	}
	put("files_read", summary.FilesRead)
	put("files_skipped", summary.FilesSkipped)
	put("processed", summary.Processed)
	put("ingest_drops", summary.IngestDrops)
	put("normalize_drops", summary.NormalizeDrops)
	put("duplicate_drops", summary.DuplicateDrops)
	for _, sc := range funnelCounts(summary) {
		put("stage_"+string(sc.Stage), sc.Count)
	}
	for _, c := range sortedClusters(summary.ByCluster) {
		put("cluster_"+strconv.Itoa(c), summary.ByCluster[c])
	}
	for _, flag := range summary.DegradationFlags {
		put("degraded", flag)
	}

	return f.SaveAs(path)
}

func funnelCounts(summary types.RunSummary) []report.StageCount {
	out := make([]report.StageCount, 0, len(types.FunnelStages))
	for _, s := range types.FunnelStages {
		out = append(out, report.StageCount{Stage: s, Count: summary.ByFunnelStage[s]})
	}
	return out
}

func sortedClusters(m map[int]int) []int {
	out := make([]int, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}
