// Package question decides whether a normalized text is a question and what
// kind. It is a fixed ordered rule table, not a statistical model: explicit
// wh-word beats yes/no auxiliary beats bare punctuation, first match wins.
package question

import (
	"strings"

	"query-insights-go/internal/types"
)

// leadIns are common prefixes that push the interrogative word off the start
// of the text ("please tell me how do i ..."). Longest are listed first so
// stripping is greedy.
var leadIns = []string{
	"please tell me",
	"can you tell me",
	"could you tell me",
	"i want to know",
	"i need to know",
	"i would like to know",
	"tell me",
	"please",
}

var whTypes = map[string]types.QuestionType{
	"what":  types.QuestionWhat,
	"how":   types.QuestionHow,
	"why":   types.QuestionWhy,
	"when":  types.QuestionWhen,
	"where": types.QuestionWhere,
	// interrogatives outside the five tracked wh-types still count as
	// questions, just of no dedicated type
	"who":   types.QuestionOther,
	"whom":  types.QuestionOther,
	"which": types.QuestionOther,
}

// auxiliaries open yes/no questions ("can i", "does it", "is there").
var auxiliaries = map[string]struct{}{
	"is": {}, "are": {}, "was": {}, "were": {}, "am": {},
	"do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "will": {}, "would": {},
	"shall": {}, "should": {}, "may": {}, "might": {},
	"have": {}, "has": {},
}

// Classify assigns a question type to normalized text. A trailing "?" is a
// positive signal but not required; texts matching no rule get
// QuestionNone and still flow downstream.
func Classify(text string) types.QuestionType {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.QuestionNone
	}
	hasMark := strings.HasSuffix(text, "?")
	body := strings.TrimSpace(strings.TrimSuffix(text, "?"))
	body = stripLeadIn(body)

	words := strings.Fields(body)
	if len(words) == 0 {
		return types.QuestionNone
	}
	first := words[0]

	if qt, ok := whTypes[first]; ok {
		return qt
	}
	if _, ok := auxiliaries[first]; ok {
		return types.QuestionYesNo
	}
	if hasMark {
		return types.QuestionOther
	}
	return types.QuestionNone
}

// IsQuestion reports whether text classifies as any question type.
func IsQuestion(text string) bool {
	return Classify(text) != types.QuestionNone
}

// Length returns the question length in words, ignoring a detached "?".
func Length(text string) int {
	n := 0
	for _, w := range strings.Fields(text) {
		if w == "?" {
			continue
		}
		n++
	}
	return n
}

func stripLeadIn(body string) string {
	for _, li := range leadIns {
		if strings.HasPrefix(body, li+" ") {
			return strings.TrimSpace(strings.TrimPrefix(body, li))
		}
	}
	return body
}
