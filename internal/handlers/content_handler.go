package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/SAP-F-2025/classroom-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
	}
}

// Dashboard returns the landing data for the caller's role
// @Summary Dashboard
// @Tags content
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.DashboardResponse}
// @Router /dashboard [get]
func (h *ContentHandler) Dashboard(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.contentService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: dashboard})
}

// CreateLesson stores a lesson with an optional attached file
// @Summary Create lesson
// @Tags content
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file false "Attachment"
// @Success 201 {object} SuccessResponse{data=models.Lesson}
// @Router /lessons [post]
func (h *ContentHandler) CreateLesson(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateLessonRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil && err != http.ErrMissingFile {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid file upload", err, err.Error())
			return
		}
		if header != nil {
			file, err := openUpload(header)
			if err != nil {
				h.RespondWithError(c, http.StatusBadRequest, "Invalid file upload", err, err.Error())
				return
			}
			defer file.Close()
			req.File = &services.FileUpload{Filename: header.Filename, Content: file}
		}
	}

	lesson, err := h.contentService.CreateLesson(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Lesson created", lesson, "lesson_id", lesson.ID)
}

// ListLessons returns lessons newest first
// @Summary List lessons
// @Tags content
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Lesson}
// @Router /lessons [get]
func (h *ContentHandler) ListLessons(c *gin.Context) {
	lessons, err := h.contentService.ListLessons(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: lessons})
}

// CreateAnnouncement posts an announcement
// @Summary Create announcement
// @Tags content
// @Accept json
// @Produce json
// @Param announcement body services.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} SuccessResponse{data=models.Announcement}
// @Router /announcements [post]
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateAnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	announcement, err := h.contentService.CreateAnnouncement(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Announcement posted", announcement, "announcement_id", announcement.ID)
}

// ListAnnouncements returns announcements newest first
// @Summary List announcements
// @Tags content
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Announcement}
// @Router /announcements [get]
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.contentService.ListAnnouncements(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: announcements})
}

// DownloadFile streams a stored upload as an attachment
// @Summary Download upload
// @Tags content
// @Produce octet-stream
// @Param name path string true "Stored file name"
// @Router /uploads/{name} [get]
func (h *ContentHandler) DownloadFile(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid name", Details: "name cannot be empty"})
		return
	}

	file, err := h.contentService.OpenFile(c.Request.Context(), name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		h.LogError(c, err, "Failed to stream file", "name", name)
	}
}
