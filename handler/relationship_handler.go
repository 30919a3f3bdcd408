package handler

import (
	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	relSvc *service.RelationshipService
}

func NewRelationshipHandler(relSvc *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relSvc: relSvc}
}

// GetBlockedUsers 获取自己的拉黑列表
// 拉黑和取消拉黑走 ManageRequest 的动作路由
func (h *RelationshipHandler) GetBlockedUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	blocked, err := h.relSvc.GetBlockedUsers(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"blocked_users": blocked})
}
