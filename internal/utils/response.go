package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应格式
type ErrorBody struct {
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

// SuccessResponse 成功响应，直接返回记录本身
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Redirect 307重定向，保留原请求方法
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusTemporaryRedirect, location)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorBody{
		Code:   code,
		Detail: detail,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusBadRequest, detail)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusUnauthorized, detail)
}

// NotFound 404错误
func NotFound(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusNotFound, detail)
}

// Conflict 409错误
func Conflict(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusConflict, detail)
}

// InternalError 500错误
func InternalError(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusInternalServerError, detail)
}
