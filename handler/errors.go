package handler

import (
	"errors"
	"net/http"

	"github.com/Maheshdudala/social-network/model"
	"github.com/Maheshdudala/social-network/utils"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层的错误分类映射为 HTTP 响应
// 状态机冲突（重复请求、反向 pending、已是好友、自己拉黑了对方）按 400 返回；
// 冷却错误同样 400，但在 data 里携带恢复时间
func respondError(c *gin.Context, err error) {
	var cooldown *model.CooldownActiveError
	switch {
	case errors.As(err, &cooldown):
		utils.ErrorWithData(c, http.StatusBadRequest, err.Error(), gin.H{
			"cooldown_expires_at": cooldown.ExpiresAt,
		})
	case errors.Is(err, model.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, model.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, model.ErrConflict):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrUnavailable):
		utils.ServiceUnavailable(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
