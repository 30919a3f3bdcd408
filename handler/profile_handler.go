package handler

import (
	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileSvc *service.ProfileService
}

func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// ViewProfile 查看他人资料（披露范围由可见性网关裁决）
func (h *ProfileHandler) ViewProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	view, err := h.profileSvc.ViewProfile(userID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// UpdateProfile 更新自己的资料
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Description   *string `json:"description"`
		SensitiveInfo *string `json:"sensitive_info"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileSvc.UpdateProfile(userID, req.Description, req.SensitiveInfo)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Profile updated.", gin.H{"profile": profile})
}
