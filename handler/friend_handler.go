package handler

import (
	"github.com/Maheshdudala/social-network/middleware"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FriendHandler struct {
	friendSvc *service.FriendService
	relSvc    *service.RelationshipService
}

func NewFriendHandler(friendSvc *service.FriendService, relSvc *service.RelationshipService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc, relSvc: relSvc}
}

// SendRequest 发送好友请求
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	request, err := h.friendSvc.SendRequest(userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Friend request sent.", gin.H{"request": request})
}

// ManageRequest 处理好友请求
// accept / reject 作用于路径里的请求 ID；
// block / unblock 是历史遗留的动作路由：作用于请求体里的目标用户 ID，
// 不要求路径里的请求存在，也不要求它属于操作者
func (h *FriendHandler) ManageRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Action string     `json:"action" binding:"required"`
		UserID *uuid.UUID `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	switch service.ManageAction(req.Action) {
	case service.ActionBlock, service.ActionUnblock:
		if req.UserID == nil {
			utils.BadRequest(c, "user id required for this action")
			return
		}
		if *req.UserID == userID {
			utils.BadRequest(c, "cannot block yourself")
			return
		}
		var err error
		if service.ManageAction(req.Action) == service.ActionBlock {
			err = h.relSvc.BlockUser(userID, *req.UserID)
		} else {
			err = h.relSvc.UnblockUser(userID, *req.UserID)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessWithMessage(c, "User "+req.Action+"ed.", nil)

	case service.ActionAccept, service.ActionReject:
		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.BadRequest(c, "invalid request id")
			return
		}
		request, err := h.friendSvc.ManageRequest(userID, requestID, service.ManageAction(req.Action))
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessWithMessage(c, "Friend request "+req.Action+"ed.", gin.H{"request": request})

	default:
		utils.BadRequest(c, "invalid action")
	}
}

// ListPending 获取发给自己的待处理请求
func (h *FriendHandler) ListPending(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	requests, err := h.friendSvc.ListPending(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"requests": requests})
}

// ListFriends 获取好友列表
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	friends, err := h.friendSvc.ListFriends(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"friends": friends})
}
