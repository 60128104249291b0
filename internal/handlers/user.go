package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
	"github.com/imLaanui/Financeu-platform-sub000/internal/service"
)

// UserHandler handles profile and membership HTTP requests.
type UserHandler struct {
	userRepo      repository.UserRepository
	lessonService service.LessonService
	logger        *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userRepo repository.UserRepository, lessonService service.LessonService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userRepo:      userRepo,
		lessonService: lessonService,
		logger:        logger,
	}
}

// UpdateMembershipRequest represents the membership change payload.
type UpdateMembershipRequest struct {
	Tier models.Tier `json:"tier"`
}

// Profile godoc
// @Summary User profile with progress stats
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	completed, err := h.lessonService.CompletedCount(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user.Public(),
		"stats": gin.H{
			"completedLessons": completed,
			"totalLessons":     0, // no lessons published yet
		},
	})
}

// UpdateMembership godoc
// @Summary Change membership tier
// @Description Self-service tier switch; a payment gateway would guard this in production
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateMembershipRequest true "Target tier"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/users/membership [put]
func (h *UserHandler) UpdateMembership(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidTier(req.Tier) {
		respondError(c, http.StatusBadRequest, "Invalid membership tier")
		return
	}

	if err := h.userRepo.UpdateMembershipTier(c.Request.Context(), claims.UserID, req.Tier); err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Membership updated successfully",
		"tier":    string(req.Tier),
	})
}

// AdminListUsers godoc
// @Summary List all users with progress aggregation
// @Tags admin
// @Security BasicAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/admin/users [get]
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	users, err := h.userRepo.ListAll(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	type userWithProgress struct {
		models.PublicUser
		Progress service.UserProgressSummary `json:"progress"`
	}

	enriched := make([]userWithProgress, 0, len(users))
	for i := range users {
		progress, err := h.lessonService.Progress(c.Request.Context(), users[i].ID)
		if err != nil {
			respondServerError(c, h.logger, err)
			return
		}
		enriched = append(enriched, userWithProgress{
			PublicUser: users[i].Public(),
			Progress:   h.lessonService.Summarize(progress),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": enriched,
		"total": len(enriched),
	})
}
