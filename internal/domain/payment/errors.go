package payment

import (
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// 支付领域错误定义
var (
	// ErrPaymentNotFound 支付记录不存在
	ErrPaymentNotFound = apperrors.New(apperrors.ErrCodePaymentNotFound, "支付记录不存在")

	// ErrOrderNotPending 只有待支付订单才能处理支付
	ErrOrderNotPending = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "只有待支付订单才能处理支付")

	// ErrPaymentCompleted 已完成的支付不允许删除
	ErrPaymentCompleted = apperrors.New(apperrors.ErrCodePaymentCompleted, "不能删除订单关联的已完成支付")

	// ErrInvalidStatus 非法的支付状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的支付状态")

	// ErrInvalidAmount 金额不合法
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "支付金额必须大于0")
)
