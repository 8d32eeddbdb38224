package order

import (
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderShipped 已发货订单不允许修改/取消
	ErrOrderShipped = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "已发货订单不允许此操作")

	// ErrInvalidStatus 非法的订单状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的订单状态")

	// ErrInvalidOrderItems 订单明细不合法
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)
