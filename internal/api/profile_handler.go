package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/service"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type SetThemeRequest struct {
	Theme domain.Theme `json:"theme" binding:"required,oneof=light dark"`
}

type AvatarURLResponse struct {
	URL string `json:"url"`
}

// --- Handler Methods ---

// RequestAvatarUpload godoc
// @Summary Request a presigned URL to upload a new avatar
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body AvatarUploadRequest true "Content type of the image"
// @Success 200 {object} service.AvatarUpload
// @Router /profile/avatar/upload-url [post]
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ConfirmAvatar godoc
// @Summary Persist the uploaded avatar's object key on the profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param avatar body ConfirmAvatarRequest true "Object key returned by upload-url"
// @Success 200 {object} UserResponse
// @Router /profile/avatar [put]
func (h *ProfileHandler) ConfirmAvatar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not update avatar")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetAvatarURL godoc
// @Summary Presigned download URL for the current avatar
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AvatarURLResponse
// @Failure 404 {object} gin.H "No avatar set"
// @Router /profile/avatar/url [get]
func (h *ProfileHandler) GetAvatarURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.profileService.AvatarURL(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoAvatar) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create download URL")
		}
		return
	}
	c.JSON(http.StatusOK, AvatarURLResponse{URL: url})
}

// SetTheme godoc
// @Summary Persist the user's display theme preference
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param theme body SetThemeRequest true "light or dark"
// @Success 200 {object} UserResponse
// @Router /profile/theme [put]
func (h *ProfileHandler) SetTheme(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.SetTheme(c.Request.Context(), userID, req.Theme)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTheme) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update theme")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
