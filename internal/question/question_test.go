package question

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"query-insights-go/internal/types"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want types.QuestionType
	}{
		{"what is a crm?", types.QuestionWhat},
		{"what is a crm", types.QuestionWhat}, // no "?" required
		{"how do i reset my password?", types.QuestionHow},
		{"why is my invoice wrong", types.QuestionWhy},
		{"when does the trial end?", types.QuestionWhen},
		{"where can i download the app", types.QuestionWhere},
		{"who is the account owner", types.QuestionOther},
		{"which plan is better", types.QuestionOther},
		{"can i cancel my order", types.QuestionYesNo},
		{"does it support exports?", types.QuestionYesNo},
		{"is there a free tier", types.QuestionYesNo},
		{"best crm for startups?", types.QuestionOther}, // punctuation-only signal
		{"pricing info please", types.QuestionNone},
		{"reset password", types.QuestionNone},
		{"", types.QuestionNone},
		{"?", types.QuestionNone},
		// lead-ins push the interrogative off the start
		{"please tell me how do i upgrade", types.QuestionHow},
		{"i want to know what the fees are", types.QuestionWhat},
		{"can you tell me why sync fails", types.QuestionWhy},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// wh-word beats the yes/no rule even when an auxiliary appears later
	assert.Equal(t, types.QuestionWhat, Classify("what can i do?"))
	// auxiliary beats the bare-punctuation rule
	assert.Equal(t, types.QuestionYesNo, Classify("should i upgrade?"))
}

func TestClassifyDeterministic(t *testing.T) {
	text := "how do i reset my password?"
	first := Classify(text)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestLength(t *testing.T) {
	assert.Equal(t, 6, Length("how do i reset my password?"))
	assert.Equal(t, 2, Length("pricing info"))
	assert.Equal(t, 0, Length(""))
}
