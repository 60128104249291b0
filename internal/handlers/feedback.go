package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
)

// minFeedbackLength keeps empty or throwaway messages out of the forum.
const minFeedbackLength = 10

// FeedbackHandler handles feedback forum HTTP requests.
type FeedbackHandler struct {
	feedbackRepo repository.FeedbackRepository
	logger       *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler instance.
func NewFeedbackHandler(feedbackRepo repository.FeedbackRepository, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// SubmitFeedbackRequest represents the feedback submission payload.
type SubmitFeedbackRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	FeedbackType string `json:"feedbackType"`
	Message      string `json:"message"`
}

// Submit godoc
// @Summary Submit feedback
// @Description Public endpoint, no authentication required
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body SubmitFeedbackRequest true "Feedback entry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FeedbackType == "" || req.Message == "" {
		respondError(c, http.StatusBadRequest, "Feedback type and message are required")
		return
	}
	if !models.ValidFeedbackType(req.FeedbackType) {
		respondError(c, http.StatusBadRequest, "Invalid feedback type")
		return
	}
	if len(req.Message) < minFeedbackLength {
		respondError(c, http.StatusBadRequest, "Message must be at least 10 characters")
		return
	}

	feedback := &models.Feedback{
		Name:         req.Name,
		Email:        req.Email,
		FeedbackType: req.FeedbackType,
		Message:      req.Message,
	}
	if err := h.feedbackRepo.Create(c.Request.Context(), feedback); err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Feedback submitted successfully",
		"feedbackId": feedback.ID,
	})
}

// AdminList godoc
// @Summary List all feedback
// @Tags admin
// @Security BasicAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/admin/feedback [get]
func (h *FeedbackHandler) AdminList(c *gin.Context) {
	feedback, err := h.feedbackRepo.ListAll(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	total, err := h.feedbackRepo.Count(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"total":    total,
	})
}

// AdminDelete godoc
// @Summary Delete a feedback entry
// @Tags admin
// @Security BasicAuth
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/feedback/{id} [delete]
func (h *FeedbackHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid feedback ID")
		return
	}

	if err := h.feedbackRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			respondError(c, http.StatusNotFound, "Feedback not found")
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
