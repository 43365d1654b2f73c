package server

import (
	"github.com/gin-gonic/gin"

	"bakery_recommend/internal/logger"
)

// ErrorBody 统一的错误结构
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse 错误响应外层
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if status >= 500 {
		logger.Error("request %s failed: %s", c.GetString(requestIDKey), message)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
