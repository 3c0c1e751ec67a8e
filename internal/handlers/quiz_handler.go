package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/SAP-F-2025/classroom-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuizHandler struct {
	BaseHandler
	quizService       services.QuizService
	submissionService services.SubmissionService
	exportService     services.ExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	submissionService services.SubmissionService,
	exportService services.ExportService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:       NewBaseHandler(logger),
		quizService:       quizService,
		submissionService: submissionService,
		exportService:     exportService,
	}
}

// CreateQuiz creates a quiz with its ordered questions
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.CreateQuizRequest true "Quiz data"
// @Success 201 {object} SuccessResponse{data=models.Quiz}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Creating quiz", "questions", len(req.Questions))

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Quiz created", quiz, "quiz_id", quiz.ID)
}

// ListQuizzes lists the caller's own quizzes for teachers and the active
// quizzes for students
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Quiz}
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var (
		quizzes []*models.Quiz
		err     error
	)
	if h.currentRole(c) == models.RoleTeacher {
		quizzes, err = h.quizService.ListTeacherQuizzes(c.Request.Context(), userID)
	} else {
		quizzes, err = h.quizService.ListActiveQuizzes(c.Request.Context())
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: quizzes})
}

// GetQuiz returns a quiz with its questions
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse{data=models.Quiz}
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: quiz})
}

// ToggleActive flips the active flag of a quiz
// @Summary Toggle quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse{data=models.Quiz}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/toggle [post]
func (h *QuizHandler) ToggleActive(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.ToggleActive(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Quiz deactivated"
	if quiz.IsActive {
		message = "Quiz activated"
	}
	h.RespondWithSuccess(c, http.StatusOK, message, quiz, "quiz_id", quiz.ID)
}

type submitJSONRequest struct {
	Answers map[string]string `json:"answers"`
}

// Submit records one submission. Answers arrive either as JSON keyed by
// question id or as multipart fields q_{id} and q_{id}_file.
// @Summary Submit quiz
// @Tags quizzes
// @Accept json,mpfd
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 201 {object} SuccessResponse{data=models.Submission}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/submissions [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var (
		req     *services.SubmitRequest
		closers []io.Closer
		err     error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req, closers, err = submitFromMultipart(c)
		defer func() {
			for _, closer := range closers {
				closer.Close()
			}
		}()
	} else {
		req, err = submitFromJSON(c)
	}
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Submitting quiz", "quiz_id", id, "answers", len(req.Answers))

	submission, err := h.submissionService.Submit(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission received", submission, "submission_id", submission.ID)
}

func submitFromJSON(c *gin.Context) (*services.SubmitRequest, error) {
	var body submitJSONRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
	}

	req := &services.SubmitRequest{Answers: make(map[uint]services.AnswerInput, len(body.Answers))}
	for key, value := range body.Answers {
		questionID, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q", key)
		}
		text := value
		req.Answers[uint(questionID)] = services.AnswerInput{Text: &text}
	}
	return req, nil
}

func submitFromMultipart(c *gin.Context) (*services.SubmitRequest, []io.Closer, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}

	req := &services.SubmitRequest{Answers: make(map[uint]services.AnswerInput)}
	for field, values := range form.Value {
		questionID, ok := questionField(field, "")
		if !ok || len(values) == 0 {
			continue
		}
		input := req.Answers[questionID]
		text := values[0]
		input.Text = &text
		req.Answers[questionID] = input
	}

	var closers []io.Closer
	for field, headers := range form.File {
		questionID, ok := questionField(field, "_file")
		if !ok || len(headers) == 0 {
			continue
		}
		file, err := openUpload(headers[0])
		if err != nil {
			return nil, closers, err
		}
		closers = append(closers, file)

		input := req.Answers[questionID]
		input.File = &services.FileUpload{Filename: headers[0].Filename, Content: file}
		req.Answers[questionID] = input
	}
	return req, closers, nil
}

// questionField extracts the id from q_{id}{suffix}
func questionField(field, suffix string) (uint, bool) {
	if !strings.HasPrefix(field, "q_") || !strings.HasSuffix(field, suffix) {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(field, "q_"), suffix)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func openUpload(header *multipart.FileHeader) (multipart.File, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", header.Filename, err)
	}
	return file, nil
}

// ListResults returns all submissions to the owning teacher and the latest
// own submission to a student
// @Summary Quiz results
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse{data=[]models.Submission}
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/results [get]
func (h *QuizHandler) ListResults(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListResults(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: submissions})
}

// ExportResults downloads the results as an xlsx workbook
// @Summary Export results
// @Tags quizzes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Quiz ID"
// @Router /quizzes/{id}/results/export [get]
func (h *QuizHandler) ExportResults(c *gin.Context) {
	id := ParseUintParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportResults(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Exported results", "quiz_id", id, "bytes", len(data))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quiz_%d_results.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}
