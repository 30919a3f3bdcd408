package handler

import (
	"strconv"

	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activitySvc *service.ActivityService
}

func NewActivityHandler(activitySvc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// ListActivities 获取自己的活动记录
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	// 分页参数
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, err := h.activitySvc.List(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"activities": activities})
}
