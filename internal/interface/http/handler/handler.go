// Package handler gin HTTP处理器
// 每个资源一个处理器结构体,仅做参数绑定和响应转换,业务逻辑在领域服务/用例层
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kovan/bookshop/pkg/errors"
	"github.com/kovan/bookshop/pkg/response"
)

// parseUintParam 解析路径中的uint参数
// 解析失败时直接写参数错误响应,调用方检查ok即可
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name+"参数")
		return 0, false
	}
	return uint(v), true
}

// parseUintQuery 解析查询串中的uint参数
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name+"参数")
		return 0, false
	}
	return uint(v), true
}

// bindError 参数绑定失败的统一响应
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
}
