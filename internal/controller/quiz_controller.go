package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmittedAnswer accepts the historical answer field aliases older clients
// still send. Normalize resolves them into the one canonical shape the
// grading engine consumes.
//
// swagger:model SubmittedAnswer
type SubmittedAnswer struct {
	QuestionID       uint              `json:"questionId"`
	SelectedOptions  []json.RawMessage `json:"selectedOptions"`
	SelectedOptsAlt  []json.RawMessage `json:"selected_options"`
	OptionID         json.RawMessage   `json:"optionId"`
	SelectedOptionID json.RawMessage   `json:"selectedOptionId"`
	AnswerText       string            `json:"answerText"`
	AnswerTextAlt    string            `json:"answer_text"`
}

// Normalize resolves aliases in priority order: optionId, selectedOptionId,
// then the first element of either selected-options array. A non-numeric
// option value grades as incorrect rather than failing the submission; if
// it is a plain string it doubles as the answer text for short answers.
func (a SubmittedAnswer) Normalize() service.AnswerInput {
	input := service.AnswerInput{QuestionID: a.QuestionID}

	raw := firstRaw(a.OptionID, a.SelectedOptionID)
	if raw == nil {
		if len(a.SelectedOptions) > 0 {
			raw = a.SelectedOptions[0]
		} else if len(a.SelectedOptsAlt) > 0 {
			raw = a.SelectedOptsAlt[0]
		}
	}

	text := a.AnswerText
	if text == "" {
		text = a.AnswerTextAlt
	}

	if raw != nil {
		if id, str, ok := parseOptionValue(raw); ok {
			input.OptionID = &id
		} else if text == "" {
			text = str
		}
	}
	input.AnswerText = text
	return input
}

func firstRaw(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if len(c) > 0 && string(c) != "null" {
			return c
		}
	}
	return nil
}

// parseOptionValue accepts a JSON number or a numeric string as an option
// id. Anything else is returned as its string form with ok == false.
func parseOptionValue(raw json.RawMessage) (uint, string, bool) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num >= 0 && num == float64(uint(num)) {
			return uint(num), "", true
		}
		return 0, strconv.FormatFloat(num, 'f', -1, 64), false
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if id, err := strconv.ParseUint(strings.TrimSpace(str), 10, 32); err == nil {
			return uint(id), "", true
		}
		return 0, str, false
	}
	return 0, string(raw), false
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	StartedAt *time.Time        `json:"startedAt"`
}

// SubmitQuiz godoc
// @Summary Submit a full quiz attempt for grading
// @Description Grades every question, records the attempt, and marks the
// @Description lesson complete whether or not the quiz was passed.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "quiz id"
// @Param body body SubmitQuizRequest true "answers"
// @Success 200 {object} util.Response{data=service.QuizSubmission}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answers := make([]service.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.QuestionID == 0 {
			util.BadRequest(ctx, "each answer needs a questionId")
			return
		}
		answers = append(answers, a.Normalize())
	}

	claims := util.GetUserFromContext(ctx)
	submission, err := c.QuizService.SubmitQuiz(claims.UserID, quizID, answers, req.StartedAt)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// GetResults godoc
// @Summary Get the caller's latest attempt on a quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.QuizAttemptView}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	result, err := c.QuizService.GetLatestResult(claims.UserID, quizID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetAllAttempts godoc
// @Summary List every attempt the caller made on a quiz, newest first
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.QuizAttemptView}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) GetAllAttempts(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.QuizService.GetAllAttempts(claims.UserID, quizID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GetAttemptInfo godoc
// @Summary Report remaining attempts on a quiz for the caller
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.AttemptInfo}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/attempt-info [get]
func (c *QuizController) GetAttemptInfo(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	info, err := c.QuizService.GetAttemptInfo(claims.UserID, quizID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, info)
}

// ListMyQuizzes godoc
// @Summary List all quizzes across the caller's enrolled courses
// @Tags quizzes
// @Produce json
// @Success 200 {object} util.Response{data=[]model.UserQuizOverview}
// @Router /api/quizzes [get]
func (c *QuizController) ListMyQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizzes, err := c.QuizService.ListUserQuizzes(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// swagger:model QuizOptionRequest
type QuizOptionRequest struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	OrderNum   int    `json:"orderNum"`
}

// swagger:model QuizQuestionRequest
type QuizQuestionRequest struct {
	QuestionText string              `json:"questionText" binding:"required"`
	QuestionType string              `json:"questionType" binding:"required,oneof=multiple_choice true_false short_answer"`
	Points       int                 `json:"points"`
	OrderNum     int                 `json:"orderNum"`
	Options      []QuizOptionRequest `json:"options"`
}

// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	LessonID     uint                  `json:"lessonId" binding:"required"`
	Title        string                `json:"title" binding:"required"`
	PassingScore int                   `json:"passingScore" binding:"gte=0,lte=100"`
	TimeLimit    *int                  `json:"timeLimit"`
	MaxAttempts  *int                  `json:"maxAttempts"`
	Questions    []QuizQuestionRequest `json:"questions" binding:"required,min=1"`
}

func (req CreateQuizRequest) toModel() *model.Quiz {
	quiz := &model.Quiz{
		LessonID:     req.LessonID,
		Title:        req.Title,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
		MaxAttempts:  req.MaxAttempts,
	}
	quiz.Questions = buildQuestions(req.Questions)
	return quiz
}

func buildQuestions(reqs []QuizQuestionRequest) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(reqs))
	for _, q := range reqs {
		question := model.QuizQuestion{
			QuestionText: q.QuestionText,
			QuestionType: model.QuestionType(q.QuestionType),
			Points:       q.Points,
			OrderNum:     q.OrderNum,
		}
		if question.Points <= 0 {
			question.Points = 1
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.QuizOption{
				OptionText: o.OptionText,
				IsCorrect:  o.IsCorrect,
				OrderNum:   o.OrderNum,
			})
		}
		questions = append(questions, question)
	}
	return questions
}

// CreateQuiz godoc
// @Summary Create a quiz with its questions and options
// @Tags quizzes
// @Accept json
// @Produce json
// @Param body body CreateQuizRequest true "quiz"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/instructor/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz := req.toModel()
	if err := c.QuizService.CreateQuiz(quiz); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Students receive the quiz without the correct-option flags.
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	includeAnswers := claims.Role == model.Instructor || claims.Role == model.Admin
	quiz, err := c.QuizService.GetQuiz(quizID, includeAnswers)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// ListByLesson godoc
// @Summary List a lesson's quizzes
// @Tags quizzes
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response{data=[]model.QuizSummary}
// @Router /api/lessons/{id}/quizzes [get]
func (c *QuizController) ListByLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	quizzes, err := c.QuizService.ListByLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// swagger:model UpdateQuizRequest
type UpdateQuizRequest struct {
	Title        *string               `json:"title"`
	PassingScore *int                  `json:"passingScore" binding:"omitempty,gte=0,lte=100"`
	TimeLimit    *int                  `json:"timeLimit"`
	MaxAttempts  *int                  `json:"maxAttempts"`
	Questions    []QuizQuestionRequest `json:"questions"`
}

// UpdateQuiz godoc
// @Summary Update quiz metadata and optionally replace its questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "quiz id"
// @Param body body UpdateQuizRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/instructor/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	changes := map[string]interface{}{}
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.PassingScore != nil {
		changes["passing_score"] = *req.PassingScore
	}
	if req.TimeLimit != nil {
		changes["time_limit"] = *req.TimeLimit
	}
	if req.MaxAttempts != nil {
		changes["max_attempts"] = *req.MaxAttempts
	}
	var questions []model.QuizQuestion
	if req.Questions != nil {
		questions = buildQuestions(req.Questions)
	}
	quiz, err := c.QuizService.UpdateQuiz(quizID, changes, questions)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions, results and answers
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(quizID); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "quiz deleted"})
}

func (c *QuizController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrNoAttempts):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrForeignQuestion):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrMaxAttemptsExceeded):
		util.Forbidden(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
