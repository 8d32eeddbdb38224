package cart

import (
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrCartItemNotFound 购物车条目不存在
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车条目不存在")

	// ErrItemNotInCart 条目不属于该购物车
	ErrItemNotInCart = apperrors.New(apperrors.ErrCodeBusinessError, "条目不属于该购物车")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
