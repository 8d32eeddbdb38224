package user

import (
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrAddressNotFound 地址不存在
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "地址不存在")

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
)
