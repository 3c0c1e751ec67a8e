package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/SAP-F-2025/classroom-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradingHandler struct {
	BaseHandler
	submissionService services.SubmissionService
}

func NewGradingHandler(submissionService services.SubmissionService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
	}
}

type gradeJSONRequest struct {
	Scores map[string]json.RawMessage `json:"scores"`
}

// GradeSubmission applies manual scores to a submission. Scores arrive as
// JSON keyed by answer id or as form fields score_{answer_id}.
// @Summary Grade submission
// @Tags grading
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path uint true "Submission ID"
// @Success 200 {object} SuccessResponse{data=models.Submission}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /submissions/{id}/grade [post]
func (h *GradingHandler) GradeSubmission(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	req, err := h.parseGradeRequest(c)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Grading submission", "submission_id", id, "scores", len(req.Scores))

	submission, err := h.submissionService.Grade(c.Request.Context(), id, req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Submission graded", submission, "submission_id", submission.ID)
}

func (h *GradingHandler) parseGradeRequest(c *gin.Context) (*services.GradeRequest, error) {
	req := &services.GradeRequest{Scores: make(map[uint]string)}

	contentType := c.ContentType()
	if contentType == "application/x-www-form-urlencoded" || strings.HasPrefix(contentType, "multipart/") {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
			return nil, err
		}
		for field, values := range c.Request.PostForm {
			raw, ok := strings.CutPrefix(field, "score_")
			if !ok || len(values) == 0 {
				continue
			}
			answerID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				continue
			}
			req.Scores[uint(answerID)] = values[0]
		}
		return req, nil
	}

	var body gradeJSONRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
	}
	for key, raw := range body.Scores {
		answerID, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid answer id %q", key)
		}
		req.Scores[uint(answerID)] = rawScore(raw)
	}
	return req, nil
}

// rawScore turns a JSON number or string into the text the grading service
// parses. Anything else becomes an empty string, which scores 0.
func rawScore(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		if number == math.Trunc(number) && math.Abs(number) < math.MaxInt32 {
			return strconv.Itoa(int(number))
		}
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return ""
}
