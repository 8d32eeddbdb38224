package payment

import (
	"context"
)

// Service 支付领域服务
// 说明:
// 支付处理/更新涉及订单状态与图书库存,属于跨聚合流程,在application层
// 的用例中实现;这里只提供单聚合的查询与删除。
type Service interface {
	// GetPaymentByID 根据ID获取支付记录
	GetPaymentByID(ctx context.Context, id uint) (*Payment, error)

	// ListPayments 查询所有支付记录
	ListPayments(ctx context.Context) ([]*Payment, error)

	// DeletePayment 删除支付记录
	// 业务规则:已完成(COMPLETED)的支付关联着已发货订单,不允许删除
	DeletePayment(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建支付领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetPaymentByID(ctx context.Context, id uint) (*Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListPayments(ctx context.Context) ([]*Payment, error) {
	return s.repo.FindAll(ctx)
}

// DeletePayment 删除支付记录
func (s *service) DeletePayment(ctx context.Context, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 已完成的支付不允许删除
	if p.IsCompleted() {
		return ErrPaymentCompleted
	}

	return s.repo.Delete(ctx, id)
}
