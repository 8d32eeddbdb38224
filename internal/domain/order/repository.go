package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单(包含订单明细,必须在同一事务中)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByPaymentID 根据支付ID反查订单
	// 用于updatePayment:只有支付ID时定位所属订单
	FindByPaymentID(ctx context.Context, paymentID uint) (*Order, error)

	// FindAll 查询所有订单(包含明细)
	FindAll(ctx context.Context) ([]*Order, error)

	// Update 更新订单(状态、支付关联)
	Update(ctx context.Context, order *Order) error
}
