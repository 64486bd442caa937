package service

import (
	"strings"

	"lms_backend/internal/model"
)

// AnswerInput is the single canonical answer shape the grading engine
// consumes. Legacy field-name aliases are resolved at the HTTP boundary,
// never here. OptionID is nil when the client selected nothing or sent a
// non-numeric value; both grade as incorrect without erroring.
type AnswerInput struct {
	QuestionID uint
	OptionID   *uint
	AnswerText string
}

// Grader scores one submitted answer against its question. One grader
// exists per question type so the short-answer placeholder can be swapped
// for real grading without touching the engine.
type Grader interface {
	Grade(question model.QuizQuestion, answer AnswerInput) bool
}

type MultipleChoiceGrader struct{}

func (MultipleChoiceGrader) Grade(question model.QuizQuestion, answer AnswerInput) bool {
	return gradeSelectable(question, answer)
}

type TrueFalseGrader struct{}

func (TrueFalseGrader) Grade(question model.QuizQuestion, answer AnswerInput) bool {
	return gradeSelectable(question, answer)
}

// ShortAnswerGrader marks any non-empty trimmed text as correct. This is a
// presence check, not real grading; replace via the Grader interface when
// keyword or manual review grading lands.
type ShortAnswerGrader struct{}

func (ShortAnswerGrader) Grade(question model.QuizQuestion, answer AnswerInput) bool {
	return strings.TrimSpace(answer.AnswerText) != ""
}

// gradeSelectable compares the submitted option id against the first option
// flagged correct. The data model intends exactly one correct option; first
// match wins if that is ever violated.
func gradeSelectable(question model.QuizQuestion, answer AnswerInput) bool {
	if answer.OptionID == nil {
		return false
	}
	for _, option := range question.Options {
		if option.IsCorrect {
			return option.ID == *answer.OptionID
		}
	}
	return false
}

var graders = map[model.QuestionType]Grader{
	model.MultipleChoice: MultipleChoiceGrader{},
	model.TrueFalse:      TrueFalseGrader{},
	model.ShortAnswer:    ShortAnswerGrader{},
}

// graderFor returns the grader for a question type; unknown types grade as
// incorrect rather than erroring mid-submission.
func graderFor(questionType model.QuestionType) Grader {
	if g, ok := graders[questionType]; ok {
		return g
	}
	return incorrectGrader{}
}

type incorrectGrader struct{}

func (incorrectGrader) Grade(model.QuizQuestion, AnswerInput) bool { return false }

// questionPoints applies the default of 1 point for questions created
// without an explicit value.
func questionPoints(question model.QuizQuestion) int {
	if question.Points <= 0 {
		return 1
	}
	return question.Points
}
