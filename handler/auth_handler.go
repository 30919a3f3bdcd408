package handler

import (
	"github.com/Maheshdudala/social-network/model"
	"github.com/Maheshdudala/social-network/service"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string     `json:"name" binding:"required"`
		Email    string     `json:"email" binding:"required,email"`
		Password string     `json:"password" binding:"required,min=8"`
		Role     model.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authSvc.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "User registered successfully.", gin.H{"user": user})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"access": token,
		"user":   user,
	})
}
