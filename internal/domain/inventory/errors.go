package inventory

import (
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// 库存流水领域错误定义
var (
	// ErrTransactionNotFound 库存流水不存在
	ErrTransactionNotFound = apperrors.New(apperrors.ErrCodeTransactionNotFound, "库存流水不存在")

	// ErrInvalidType 非法的流水类型
	ErrInvalidType = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的流水类型")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
