package payment

import (
	"context"
)

// Repository 支付仓储接口
type Repository interface {
	// Create 创建支付记录
	Create(ctx context.Context, payment *Payment) error

	// FindByID 根据ID查找支付记录
	FindByID(ctx context.Context, id uint) (*Payment, error)

	// FindAll 查询所有支付记录
	FindAll(ctx context.Context) ([]*Payment, error)

	// Update 更新支付记录
	Update(ctx context.Context, payment *Payment) error

	// Delete 删除支付记录
	Delete(ctx context.Context, id uint) error
}
