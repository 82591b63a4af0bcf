// Package funnel assigns one of the five marketing funnel stages via
// zero-shot scoring against fixed label prompts. Ambiguity biases toward
// the earlier, lower-commitment stage: equal scores resolve to the stage
// that comes first in funnel order.
package funnel

import (
	"context"
	"errors"

	"query-insights-go/internal/types"
)

// Scorer is the oracle capability: score(text, labels) -> label to score.
type Scorer interface {
	Score(ctx context.Context, text string, labels []string) (map[string]float64, error)
}

// Prompts are the fixed label descriptions handed to the zero-shot oracle,
// one per stage in funnel order.
var Prompts = map[types.FunnelStage]string{
	types.StageAwareness:     "learning what a product or topic is",
	types.StageConsideration: "comparing options and evaluating fit",
	types.StageDecision:      "ready to buy, sign up or commit",
	types.StageRetention:     "using the product and needing help",
	types.StageAdvocacy:      "recommending or reviewing the product",
}

// Prediction is one scored stage assignment.
type Prediction struct {
	Stage      types.FunnelStage
	Confidence float64 // winning score normalized over all label scores
}

// Pick selects the stage from raw label scores: argmax with earlier-stage
// tie-break, confidence normalized by the score sum. A zero or empty score
// set falls back to Awareness at confidence 0.
func Pick(scores map[string]float64) Prediction {
	var sum float64
	best := types.StageAwareness
	bestScore := 0.0
	found := false
	for _, stage := range types.FunnelStages {
		s, ok := scores[string(stage)]
		if !ok || s < 0 {
			continue
		}
		sum += s
		// strictly greater: on a tie the earlier stage already held wins
		if !found || s > bestScore {
			best = stage
			bestScore = s
			found = true
		}
	}
	if !found || sum <= 0 {
		return Prediction{Stage: types.StageAwareness, Confidence: 0}
	}
	return Prediction{Stage: best, Confidence: bestScore / sum}
}

// Labels returns the stage names in funnel order for the oracle call.
func Labels() []string {
	out := make([]string, len(types.FunnelStages))
	for i, s := range types.FunnelStages {
		out[i] = string(s)
	}
	return out
}

// Annotate scores one text. On OracleUnavailable it degrades to Awareness
// at confidence 0 and reports degraded=true; other errors pass through.
func Annotate(ctx context.Context, s Scorer, text string) (Prediction, bool, error) {
	scores, err := s.Score(ctx, text, Labels())
	if err != nil {
		var unavailable *types.OracleUnavailable
		if errors.As(err, &unavailable) {
			return Prediction{Stage: types.StageAwareness, Confidence: 0}, true, nil
		}
		return Prediction{}, false, err
	}
	return Pick(scores), false, nil
}
