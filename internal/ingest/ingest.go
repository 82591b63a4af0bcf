// Package ingest merges tabular input files (CSV or XLSX) into one ordered
// record set. Files are concatenated in discovery order; rows without a
// usable title are dropped and counted.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"query-insights-go/internal/logger"
	"query-insights-go/internal/types"
)

// Result carries the merged records plus the per-file bookkeeping the run
// summary reports.
type Result struct {
	Records      []types.RawRecord
	RowsDropped  int
	FilesRead    int
	FilesSkipped int
	SkipErrors   []error
}

// Discover lists .csv and .xlsx files directly under folder, sorted by name
// so merge order is stable across runs.
func Discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadAll loads every file in order. A file with no usable columns yields a
// SchemaError, is skipped and recorded; the remaining files still load.
func LoadAll(files []string) Result {
	log := logger.New().WithField("component", "ingest")
	var res Result
	for _, f := range files {
		recs, dropped, err := loadFile(f)
		if err != nil {
			log.WithField("file", f).WithField("error", err.Error()).Warn("skipping file")
			res.FilesSkipped++
			res.SkipErrors = append(res.SkipErrors, err)
			continue
		}
		log.WithField("file", f).WithField("rows", len(recs)).WithField("dropped", dropped).Info("file loaded")
		res.FilesRead++
		res.RowsDropped += dropped
		res.Records = append(res.Records, recs...)
	}
	return res
}

func loadFile(path string) ([]types.RawRecord, int, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, &types.SchemaError{File: path, Reason: "empty file"}
	}

	titleIdx, keywordIdx := detectColumns(rows[0])
	if titleIdx == -1 {
		return nil, 0, &types.SchemaError{File: path, Reason: "no title column"}
	}

	var out []types.RawRecord
	dropped := 0
	base := filepath.Base(path)
	for _, r := range rows[1:] {
		title := ""
		if titleIdx < len(r) {
			title = strings.TrimSpace(r[titleIdx])
		}
		if title == "" {
			dropped++
			continue
		}
		keyword := ""
		if keywordIdx >= 0 && keywordIdx < len(r) {
			keyword = strings.TrimSpace(r[keywordIdx])
		}
		out = append(out, types.RawRecord{
			ID:         uuid.New().String(),
			Title:      title,
			Keyword:    keyword,
			SourceFile: base,
		})
	}
	return out, dropped, nil
}

// detectColumns finds the title and keyword columns by header heuristics,
// first exact match then contains.
func detectColumns(header []string) (titleIdx, keywordIdx int) {
	titleIdx, keywordIdx = -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case l == "title" || l == "question" || l == "query":
			if titleIdx == -1 {
				titleIdx = i
			}
		case l == "keyword" || l == "tag":
			if keywordIdx == -1 {
				keywordIdx = i
			}
		}
	}
	if titleIdx == -1 {
		for i, h := range header {
			l := strings.ToLower(strings.TrimSpace(h))
			if strings.Contains(l, "title") || strings.Contains(l, "question") || strings.Contains(l, "query") {
				titleIdx = i
				break
			}
		}
	}
	if keywordIdx == -1 {
		for i, h := range header {
			l := strings.ToLower(strings.TrimSpace(h))
			if strings.Contains(l, "keyword") || strings.Contains(l, "tag") {
				keywordIdx = i
				break
			}
		}
	}
	return titleIdx, keywordIdx
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}
