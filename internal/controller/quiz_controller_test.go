package controller

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func TestSubmittedAnswerNormalize(t *testing.T) {
	tests := []struct {
		name       string
		answer     SubmittedAnswer
		wantOption *uint
		wantText   string
	}{
		{
			name:       "optionId as JSON number",
			answer:     SubmittedAnswer{QuestionID: 1, OptionID: raw("5")},
			wantOption: uintPtr(5),
		},
		{
			name:       "optionId as numeric string",
			answer:     SubmittedAnswer{QuestionID: 1, OptionID: raw(`"7"`)},
			wantOption: uintPtr(7),
		},
		{
			name:       "selectedOptionId alias",
			answer:     SubmittedAnswer{QuestionID: 1, SelectedOptionID: raw("3")},
			wantOption: uintPtr(3),
		},
		{
			name:       "first element of selectedOptions array",
			answer:     SubmittedAnswer{QuestionID: 1, SelectedOptions: []json.RawMessage{raw("9"), raw("2")}},
			wantOption: uintPtr(9),
		},
		{
			name:       "snake_case selected_options alias",
			answer:     SubmittedAnswer{QuestionID: 1, SelectedOptsAlt: []json.RawMessage{raw(`"4"`)}},
			wantOption: uintPtr(4),
		},
		{
			name: "optionId wins over selectedOptions",
			answer: SubmittedAnswer{
				QuestionID:      1,
				OptionID:        raw("5"),
				SelectedOptions: []json.RawMessage{raw("9")},
			},
			wantOption: uintPtr(5),
		},
		{
			name: "null optionId falls through to selectedOptionId",
			answer: SubmittedAnswer{
				QuestionID:       1,
				OptionID:         raw("null"),
				SelectedOptionID: raw("8"),
			},
			wantOption: uintPtr(8),
		},
		{
			name:     "non-numeric string doubles as answer text",
			answer:   SubmittedAnswer{QuestionID: 1, OptionID: raw(`"gravity pulls"`)},
			wantText: "gravity pulls",
		},
		{
			name: "explicit answerText beats a non-numeric option value",
			answer: SubmittedAnswer{
				QuestionID: 1,
				OptionID:   raw(`"true"`),
				AnswerText: "the real answer",
			},
			wantText: "the real answer",
		},
		{
			name:     "snake_case answer_text alias",
			answer:   SubmittedAnswer{QuestionID: 1, AnswerTextAlt: "legacy text"},
			wantText: "legacy text",
		},
		{
			name:     "negative number grades as no selection",
			answer:   SubmittedAnswer{QuestionID: 1, OptionID: raw("-3")},
			wantText: "-3",
		},
		{
			name:     "fractional number grades as no selection",
			answer:   SubmittedAnswer{QuestionID: 1, OptionID: raw("2.5"), AnswerText: "kept"},
			wantText: "kept",
		},
		{
			name:   "nothing submitted",
			answer: SubmittedAnswer{QuestionID: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.answer.Normalize()
			assert.EqualValues(t, 1, input.QuestionID)
			if tt.wantOption == nil {
				assert.Nil(t, input.OptionID)
			} else {
				require.NotNil(t, input.OptionID)
				assert.Equal(t, *tt.wantOption, *input.OptionID)
			}
			assert.Equal(t, tt.wantText, input.AnswerText)
		})
	}
}

func TestParseOptionValue(t *testing.T) {
	id, _, ok := parseOptionValue(raw("12"))
	require.True(t, ok)
	assert.EqualValues(t, 12, id)

	id, _, ok = parseOptionValue(raw(`" 12 "`))
	require.True(t, ok)
	assert.EqualValues(t, 12, id)

	_, text, ok := parseOptionValue(raw(`"twelve"`))
	assert.False(t, ok)
	assert.Equal(t, "twelve", text)

	_, _, ok = parseOptionValue(raw("-1"))
	assert.False(t, ok)

	_, _, ok = parseOptionValue(raw("3.5"))
	assert.False(t, ok)

	_, text, ok = parseOptionValue(raw(`{"id":1}`))
	assert.False(t, ok)
	assert.Equal(t, `{"id":1}`, text)
}

func uintPtr(v uint) *uint {
	return &v
}
