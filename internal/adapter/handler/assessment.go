package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/errors"
	assessmentDto "github.com/johnquangdev/interview-coach/internal/adapter/dto/assessment"
	"github.com/johnquangdev/interview-coach/internal/adapter/presenter"
	assessmentUsecase "github.com/johnquangdev/interview-coach/internal/usecase/assessment"
	usecaseErrors "github.com/johnquangdev/interview-coach/internal/usecase/errors"
)

const defaultTrendDays = 30

// Assessment handles communication assessment HTTP requests
type Assessment struct {
	service assessmentUsecase.Service
	logger  *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(service assessmentUsecase.Service, logger *zap.Logger) *Assessment {
	return &Assessment{
		service: service,
		logger:  logger,
	}
}

// Assess handles POST /assessments
// @Summary      Assess a transcript
// @Description  Scores one transcribed answer on six communication dimensions and stores the result
// @Tags         Assessments
// @Accept       json
// @Produce      json
// @Param        request  body      assessment.AssessRequest  true  "Assessment request"
// @Success      201      {object}  assessment.AssessmentResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or transcript too short"
// @Failure      500      {object}  map[string]interface{}  "Evaluation or storage failure"
// @Router       /assessments [post]
func (h *Assessment) Assess(c echo.Context) error {
	var req assessmentDto.AssessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.Assess(c.Request().Context(), presenter.ToAssessmentRequest(&req))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}

	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToAssessmentResponse(result))
}

// BatchAssess handles POST /assessments/batch
// @Summary      Assess an interview
// @Description  Scores every response of an interview and returns an aggregate summary. Short transcripts are skipped.
// @Tags         Assessments
// @Accept       json
// @Produce      json
// @Param        request  body      assessment.BatchAssessRequest  true  "Batch request"
// @Success      201      {object}  assessment.BatchAssessResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Failure      500      {object}  map[string]interface{}  "Storage failure"
// @Router       /assessments/batch [post]
func (h *Assessment) BatchAssess(c echo.Context) error {
	var req assessmentDto.BatchAssessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.BatchAssess(c.Request().Context(), presenter.ToBatchRequests(&req))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}

	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToBatchAssessResponse(result))
}

// GetAssessment handles GET /assessments/:id
// @Summary      Get an assessment
// @Tags         Assessments
// @Produce      json
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  assessment.AssessmentResponse
// @Failure      404  {object}  map[string]interface{}  "Assessment not found"
// @Router       /assessments/{id} [get]
func (h *Assessment) GetAssessment(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("id is required"))
	}

	result, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrAssessmentNotFound) {
			return HandleError(h.logger, c, errors.ErrAssessmentNotFound(id))
		}
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}

	return HandleSuccess(h.logger, c, presenter.ToAssessmentResponse(result))
}

// GetUserHistory handles GET /users/:user_id/assessments
// @Summary      List a user's assessments
// @Tags         Users
// @Produce      json
// @Param        user_id  path      string  true   "User ID"
// @Param        limit    query     int     false  "Maximum results (1-100, default 10)"
// @Success      200      {object}  assessment.HistoryResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid query"
// @Router       /users/{user_id}/assessments [get]
func (h *Assessment) GetUserHistory(c echo.Context) error {
	userID := c.Param("user_id")
	var q assessmentDto.HistoryQuery
	if err := c.Bind(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	list, err := h.service.GetUserHistory(c.Request().Context(), userID, q.Limit)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}

	return HandleSuccess(h.logger, c, &assessmentDto.HistoryResponse{
		UserID:      userID,
		Assessments: presenter.ToAssessmentResponses(list),
		Count:       len(list),
	})
}

// GetUserAverages handles GET /users/:user_id/averages
// @Summary      Get a user's average scores
// @Description  Per-dimension means over completed assessments. has_data is false when none exist.
// @Tags         Users
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  assessment.AveragesResponse
// @Router       /users/{user_id}/averages [get]
func (h *Assessment) GetUserAverages(c echo.Context) error {
	averages, err := h.service.GetUserAverages(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}
	return HandleSuccess(h.logger, c, presenter.ToAveragesResponse(averages))
}

// GetImprovementTrends handles GET /users/:user_id/trends
// @Summary      Get a user's score trend
// @Tags         Users
// @Produce      json
// @Param        user_id  path      string  true   "User ID"
// @Param        days     query     int     false  "Window in days (1-365, default 30)"
// @Success      200      {object}  assessment.TrendsResponse
// @Router       /users/{user_id}/trends [get]
func (h *Assessment) GetImprovementTrends(c echo.Context) error {
	userID := c.Param("user_id")
	var q assessmentDto.TrendsQuery
	if err := c.Bind(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	days := q.Days
	if days == 0 {
		days = defaultTrendDays
	}

	points, err := h.service.GetImprovementTrends(c.Request().Context(), userID, days)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}
	return HandleSuccess(h.logger, c, presenter.ToTrendsResponse(userID, days, points))
}

// GetInterviewAssessments handles GET /interviews/:interview_id/assessments
// @Summary      List an interview's assessments
// @Tags         Interviews
// @Produce      json
// @Param        interview_id  path      string  true   "Interview ID"
// @Param        user_id       query     string  false  "Restrict to one user"
// @Success      200           {array}   assessment.AssessmentResponse
// @Router       /interviews/{interview_id}/assessments [get]
func (h *Assessment) GetInterviewAssessments(c echo.Context) error {
	list, err := h.service.GetByInterview(c.Request().Context(), c.Param("interview_id"), c.QueryParam("user_id"))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}
	return HandleSuccess(h.logger, c, presenter.ToAssessmentResponses(list))
}

// GetQuestionAssessments handles GET /questions/:question_id/assessments
// @Summary      List a question's recent assessments
// @Tags         Questions
// @Produce      json
// @Param        question_id  path      string  true   "Question ID"
// @Param        limit        query     int     false  "Maximum results (1-100, default 10)"
// @Success      200          {array}   assessment.AssessmentResponse
// @Failure      400          {object}  map[string]interface{}  "Invalid query"
// @Router       /questions/{question_id}/assessments [get]
func (h *Assessment) GetQuestionAssessments(c echo.Context) error {
	var q assessmentDto.HistoryQuery
	if err := c.Bind(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	list, err := h.service.GetByQuestion(c.Request().Context(), c.Param("question_id"), q.Limit)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, assessmentUsecase.MinTranscriptLength))
	}
	return HandleSuccess(h.logger, c, presenter.ToAssessmentResponses(list))
}
