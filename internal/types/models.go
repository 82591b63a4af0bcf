package types

// RawRecord is one usable input row. ID is minted at ingestion and is the
// identity that survives every later stage.
type RawRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Keyword    string `json:"keyword,omitempty"`
	SourceFile string `json:"source_file"`
}

// CleanedRecord copies the raw fields and adds the normalized text. It holds
// no reference back to the RawRecord it came from.
type CleanedRecord struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Keyword        string `json:"keyword,omitempty"`
	SourceFile     string `json:"source_file"`
	NormalizedText string `json:"normalized_text"`
}

type QuestionType string

const (
	QuestionWhat  QuestionType = "what"
	QuestionHow   QuestionType = "how"
	QuestionWhy   QuestionType = "why"
	QuestionWhen  QuestionType = "when"
	QuestionWhere QuestionType = "where"
	QuestionYesNo QuestionType = "yes_no"
	QuestionOther QuestionType = "other"
	QuestionNone  QuestionType = "none"
)

// Entity is a tagged span inside the normalized text. Spans are ordered and
// non-overlapping.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type FunnelStage string

const (
	StageAwareness     FunnelStage = "Awareness"
	StageConsideration FunnelStage = "Consideration"
	StageDecision      FunnelStage = "Decision"
	StageRetention     FunnelStage = "Retention"
	StageAdvocacy      FunnelStage = "Advocacy"
)

// FunnelStages lists the stages in funnel order. Ties between equal scores
// resolve to the earliest stage in this slice.
var FunnelStages = []FunnelStage{
	StageAwareness,
	StageConsideration,
	StageDecision,
	StageRetention,
	StageAdvocacy,
}

// StageOrder returns the position of s in the funnel, or len(FunnelStages)
// for an unknown stage.
func StageOrder(s FunnelStage) int {
	for i, st := range FunnelStages {
		if st == s {
			return i
		}
	}
	return len(FunnelStages)
}

// Annotation is the bag of per-record fields computed independently by the
// annotators. Fields are filled in any order; the zero value is a valid
// "nothing detected" annotation.
type Annotation struct {
	QuestionType     QuestionType `json:"question_type"`
	Entities         []Entity     `json:"entities"`
	FunnelStage      FunnelStage  `json:"funnel_stage"`
	FunnelConfidence float64      `json:"funnel_confidence"`
}

// ClusterAssignment places a record in this run's partition. Cluster ids are
// only stable across runs for identical corpus, seed and cluster count.
type ClusterAssignment struct {
	ClusterID          int     `json:"cluster_id"`
	DistanceToCentroid float64 `json:"distance_to_centroid"`
}

// LabeledRecord is the terminal, read-only unit written to the output table.
type LabeledRecord struct {
	CleanedRecord
	Annotation
	ClusterAssignment
	QuestionLength int `json:"question_length"`
}

// Degradation flags reported in the run summary.
const (
	DegradedEntityTagger = "entity_tagger_unavailable"
	DegradedFunnelScorer = "funnel_scorer_unavailable"
	DegradedEmptyCorpus  = "empty_corpus"
)

// RunSummary is the structured run result reported to the caller. Drop
// counts and degradation flags are always populated so silent data loss is
// never hidden.
type RunSummary struct {
	FilesRead        int                  `json:"files_read"`
	FilesSkipped     int                  `json:"files_skipped"`
	Processed        int                  `json:"processed"`
	IngestDrops      int                  `json:"ingest_drops"`
	NormalizeDrops   int                  `json:"normalize_drops"`
	DuplicateDrops   int                  `json:"duplicate_drops"`
	ByQuestionType   map[QuestionType]int `json:"by_question_type"`
	ByFunnelStage    map[FunnelStage]int  `json:"by_funnel_stage"`
	ByCluster        map[int]int          `json:"by_cluster"`
	DegradationFlags []string             `json:"degradation_flags,omitempty"`
}
