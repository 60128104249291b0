package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imLaanui/Financeu-platform-sub000/internal/service"
)

// LessonHandler handles lesson progress HTTP requests.
type LessonHandler struct {
	lessonService service.LessonService
	logger        *zap.Logger
}

// NewLessonHandler creates a new LessonHandler instance.
func NewLessonHandler(lessonService service.LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		logger:        logger,
	}
}

// CompleteLessonRequest represents the lesson completion payload.
type CompleteLessonRequest struct {
	LessonID string `json:"lessonId"`
}

// Progress godoc
// @Summary Lesson progress for the current user
// @Tags lessons
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/lessons/progress [get]
func (h *LessonHandler) Progress(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	progress, err := h.lessonService.Progress(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// Complete godoc
// @Summary Mark a lesson completed
// @Tags lessons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CompleteLessonRequest true "Lesson to mark complete"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/lessons/complete [post]
func (h *LessonHandler) Complete(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req CompleteLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LessonID == "" {
		respondError(c, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	if err := h.lessonService.Complete(c.Request.Context(), claims.UserID, req.LessonID); err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Lesson marked as complete",
		"lessonId": req.LessonID,
	})
}

// List godoc
// @Summary Lesson catalog with tier accessibility
// @Tags lessons
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lessons": h.lessonService.Catalog(claims.MembershipTier),
	})
}
