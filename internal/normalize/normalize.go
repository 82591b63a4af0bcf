// Package normalize cleans raw titles into the canonical text every later
// stage operates on. Normalize is a pure function: identical input always
// yields identical output, and the transform is idempotent.
package normalize

import (
	"regexp"
	"strings"

	"query-insights-go/internal/logger"
	"query-insights-go/internal/types"
)

var (
	urlRe    = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	entityRe = regexp.MustCompile(`&[a-z]+;|&#\d+;`)
	// keep letters, digits, whitespace, apostrophes and question marks; the
	// trailing "?" is a classification signal and must survive cleaning
	junkRe     = regexp.MustCompile(`[^a-z0-9\s'?]`)
	qmarkRunRe = regexp.MustCompile(`\?+`)
	spaceRe    = regexp.MustCompile(`\s+`)
	leadRe     = regexp.MustCompile(`^[^a-z0-9]+`)
	trailRe    = regexp.MustCompile(`[^a-z0-9?]+$`)
)

// Normalize lowercases, strips URLs/HTML fragments and non-ASCII noise,
// collapses repeated punctuation and whitespace, and trims leading/trailing
// non-alphanumeric characters. A single terminal "?" is preserved.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = urlRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = entityRe.ReplaceAllString(s, " ")
	s = stripNonASCII(s)
	s = junkRe.ReplaceAllString(s, " ")
	s = qmarkRunRe.ReplaceAllString(s, "?")
	// detach interior question marks so "how? really" keeps word boundaries
	s = strings.ReplaceAll(s, "?", " ? ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = leadRe.ReplaceAllString(s, "")
	// reattach a single terminal question mark
	if strings.HasSuffix(s, " ?") {
		s = strings.TrimSuffix(s, " ?") + "?"
	}
	s = trailRe.ReplaceAllString(s, "")
	if strings.HasSuffix(s, " ?") {
		s = strings.TrimSuffix(s, " ?") + "?"
	}
	return strings.TrimSpace(s)
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanAll derives CleanedRecords. Records whose normalized text is empty
// are dropped and counted separately from ingestion drops.
func CleanAll(records []types.RawRecord) ([]types.CleanedRecord, int) {
	log := logger.New().WithField("component", "normalize")
	out := make([]types.CleanedRecord, 0, len(records))
	dropped := 0
	for _, r := range records {
		text := Normalize(r.Title)
		if text == "" || text == "?" {
			dropped++
			continue
		}
		out = append(out, types.CleanedRecord{
			ID:             r.ID,
			Title:          r.Title,
			Keyword:        Normalize(r.Keyword),
			SourceFile:     r.SourceFile,
			NormalizedText: text,
		})
	}
	if dropped > 0 {
		log.WithField("dropped", dropped).Info("records emptied by normalization")
	}
	return out, dropped
}

// DedupExact collapses records with identical (keyword, normalized text),
// keeping the first occurrence. Returns the survivors and the drop count.
func DedupExact(records []types.CleanedRecord) ([]types.CleanedRecord, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]types.CleanedRecord, 0, len(records))
	dropped := 0
	for _, r := range records {
		key := r.Keyword + "\x00" + r.NormalizedText
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}
