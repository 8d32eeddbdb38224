// Package payment 支付应用层用例
package payment

import (
	"context"
	"time"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/pkg/metrics"
)

// TxManager 事务管理接口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// ProcessPaymentUseCase 处理订单支付用例
// 核心跨聚合操作:支付落库、订单状态流转、库存扣减在同一事务内完成
type ProcessPaymentUseCase struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	bookRepo    book.Repository
	invRepo     inventory.Repository
	txManager   TxManager
	publisher   EventPublisher
}

// NewProcessPaymentUseCase 创建支付处理用例
func NewProcessPaymentUseCase(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	bookRepo book.Repository,
	invRepo inventory.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		invRepo:     invRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// ProcessPaymentRequest 支付请求DTO
type ProcessPaymentRequest struct {
	Method      string // 支付方式
	Status      string // 支付结果状态
	Amount      int64  // 支付金额(分)
	ReferenceNo string // 第三方参考号,为空时自动生成
}

// Execute 处理订单支付
// 业务规则:
//   - 订单必须处于PENDING状态
//   - 参考号缺失时自动生成(PAY-前缀UUID)
//   - COMPLETED:订单转SHIPPED,逐项锁行扣减库存(不足则整体回滚),记录Purchase流水
//   - FAILED:支付落库但订单保持PENDING,库存不变
func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, orderID uint, req ProcessPaymentRequest) (*payment.Payment, error) {
	status := payment.Status(req.Status)
	if !status.Valid() {
		return nil, payment.ErrInvalidStatus
	}
	if req.Amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	var result *payment.Payment
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		// 1. 状态前置校验:仅PENDING订单可支付
		if o.Status != order.StatusPending {
			return payment.ErrOrderNotPending
		}

		// 2. 构造并持久化支付记录
		refNo := req.ReferenceNo
		if refNo == "" {
			refNo = payment.NewReferenceNo()
		}
		p := &payment.Payment{
			PaymentDate: time.Now(),
			Method:      req.Method,
			Status:      status,
			Amount:      req.Amount,
			ReferenceNo: refNo,
		}
		if err := uc.paymentRepo.Create(txCtx, p); err != nil {
			return err
		}

		// 3. 回填订单的支付关联
		o.LinkPayment(p.ID)

		// 4. 支付成功:发货 + 扣减库存
		if p.IsCompleted() {
			o.MarkShipped()
			if err := uc.deductStock(txCtx, o); err != nil {
				return err
			}
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		metrics.PaymentsProcessedTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.PaymentsProcessedTotal.WithLabelValues(string(result.Status)).Inc()

	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, "payment.processed", map[string]interface{}{
			"payment_id":   result.ID,
			"order_id":     orderID,
			"status":       string(result.Status),
			"amount":       result.Amount,
			"reference_no": result.ReferenceNo,
		})
	}

	return result, nil
}

// deductStock 逐项扣减订单明细对应的图书库存
// 先SELECT FOR UPDATE锁行再判断库存,防止并发超卖
func (uc *ProcessPaymentUseCase) deductStock(txCtx context.Context, o *order.Order) error {
	for _, item := range o.Items {
		b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
		if err != nil {
			return err
		}
		if err := b.DecrStock(item.Quantity); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		tx := inventory.NewPurchaseTransaction(item.BookID, item.Quantity, "订单支付扣减库存")
		if err := uc.invRepo.Create(txCtx, tx); err != nil {
			return err
		}
		metrics.StockAdjustmentsTotal.WithLabelValues("purchase").Inc()
	}
	return nil
}
