package service

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func mcQuestion() model.QuizQuestion {
	return model.QuizQuestion{
		QuestionType: model.MultipleChoice,
		Options: []model.QuizOption{
			{BaseModel: model.BaseModel{ID: 10}, OptionText: "right", IsCorrect: true},
			{BaseModel: model.BaseModel{ID: 11}, OptionText: "wrong"},
		},
	}
}

func TestMultipleChoiceGrader(t *testing.T) {
	question := mcQuestion()
	correct := uint(10)
	wrong := uint(11)

	assert.True(t, MultipleChoiceGrader{}.Grade(question, AnswerInput{OptionID: &correct}))
	assert.False(t, MultipleChoiceGrader{}.Grade(question, AnswerInput{OptionID: &wrong}))
	assert.False(t, MultipleChoiceGrader{}.Grade(question, AnswerInput{}))
}

func TestTrueFalseGrader(t *testing.T) {
	question := mcQuestion()
	question.QuestionType = model.TrueFalse
	correct := uint(10)

	assert.True(t, TrueFalseGrader{}.Grade(question, AnswerInput{OptionID: &correct}))
	assert.False(t, TrueFalseGrader{}.Grade(question, AnswerInput{}))
}

func TestGradeSelectableNoCorrectOption(t *testing.T) {
	question := model.QuizQuestion{
		QuestionType: model.MultipleChoice,
		Options: []model.QuizOption{
			{BaseModel: model.BaseModel{ID: 10}, OptionText: "a"},
		},
	}
	id := uint(10)
	assert.False(t, MultipleChoiceGrader{}.Grade(question, AnswerInput{OptionID: &id}))
}

func TestShortAnswerGrader(t *testing.T) {
	question := model.QuizQuestion{QuestionType: model.ShortAnswer}

	assert.True(t, ShortAnswerGrader{}.Grade(question, AnswerInput{AnswerText: "gravity pulls"}))
	assert.False(t, ShortAnswerGrader{}.Grade(question, AnswerInput{AnswerText: ""}))
	assert.False(t, ShortAnswerGrader{}.Grade(question, AnswerInput{AnswerText: "   "}))
}

func TestGraderForUnknownType(t *testing.T) {
	g := graderFor(model.QuestionType("essay"))
	assert.False(t, g.Grade(mcQuestion(), AnswerInput{AnswerText: "anything"}))
}

func TestQuestionPointsDefault(t *testing.T) {
	assert.Equal(t, 1, questionPoints(model.QuizQuestion{Points: 0}))
	assert.Equal(t, 1, questionPoints(model.QuizQuestion{Points: -3}))
	assert.Equal(t, 5, questionPoints(model.QuizQuestion{Points: 5}))
}
