package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/policy"
	"github.com/ali-aqib/blog/internal/service"
)

// HandleServiceError 把业务错误映射为错误页面
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, policy.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "The page you are looking for does not exist.")
	case errors.Is(err, policy.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "You are not allowed to do that.")
	case errors.Is(err, service.ErrDuplicateTitle):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, "Invalid input.")
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// parseID 解析路径参数 :id，非法时按 404 处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusNotFound, "The page you are looking for does not exist.")
		return 0, false
	}
	return uint(id), true
}
