package order

import (
	"context"
)

// Service 订单领域服务
// 说明:
// 单聚合的查询与状态覆盖在这里;跨聚合的创建/取消(涉及用户、地址、
// 图书库存、支付)由application层的用例实现。
type Service interface {
	// GetOrderByID 根据ID获取订单(包含明细)
	GetOrderByID(ctx context.Context, id uint) (*Order, error)

	// ListOrders 查询所有订单
	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateOrderStatus 覆盖订单状态
	// 业务规则:
	// - 已发货订单不允许修改
	// - 目标状态必须是封闭枚举中的合法值
	UpdateOrderStatus(ctx context.Context, id uint, status Status) (*Order, error)
}

type service struct {
	repo Repository
}

// NewService 创建订单领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrderByID(ctx context.Context, id uint) (*Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.FindAll(ctx)
}

// UpdateOrderStatus 覆盖订单状态
func (s *service) UpdateOrderStatus(ctx context.Context, id uint, status Status) (*Order, error) {
	// 1. 状态值校验(封闭枚举)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	// 2. 查询订单
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 已发货订单拒绝修改
	if !o.CanModify() {
		return nil, ErrOrderShipped
	}

	// 4. 覆盖状态并持久化
	o.Status = status
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}
