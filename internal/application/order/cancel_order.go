package order

import (
	"context"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/pkg/metrics"
)

// CancelOrderUseCase 取消订单用例
// 跨聚合操作:订单状态、支付退款、库存回补必须在同一事务内完成
type CancelOrderUseCase struct {
	orderRepo   order.Repository
	paymentRepo payment.Repository
	bookRepo    book.Repository
	invRepo     inventory.Repository
	txManager   TxManager
	publisher   EventPublisher
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	paymentRepo payment.Repository,
	bookRepo book.Repository,
	invRepo inventory.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		bookRepo:    bookRepo,
		invRepo:     invRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// Execute 取消订单
// 业务规则:
//   - 已发货(SHIPPED)订单不可取消
//   - 关联支付已完成(COMPLETED)时:支付转REFUNDED,逐项回补库存并记录Restock流水
//   - 整个流程在一个事务中执行,任一步失败全部回滚
func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID uint) (*order.Order, error) {
	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		// 1. 状态校验:已发货订单不可取消
		if !o.CanModify() {
			return order.ErrOrderShipped
		}

		// 2. 关联支付已完成时退款并回补库存
		if o.PaymentID != nil {
			p, err := uc.paymentRepo.FindByID(txCtx, *o.PaymentID)
			if err != nil {
				return err
			}
			if p.IsCompleted() {
				p.Status = payment.StatusRefunded
				if err := uc.paymentRepo.Update(txCtx, p); err != nil {
					return err
				}

				// 逐项锁定图书行回补库存,并写入Restock审计流水
				for _, item := range o.Items {
					b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
					if err != nil {
						return err
					}
					if err := b.IncrStock(item.Quantity); err != nil {
						return err
					}
					if err := uc.bookRepo.Update(txCtx, b); err != nil {
						return err
					}

					tx := inventory.NewRestockTransaction(item.BookID, item.Quantity, "订单取消回补库存")
					if err := uc.invRepo.Create(txCtx, tx); err != nil {
						return err
					}
					metrics.StockAdjustmentsTotal.WithLabelValues("restock").Inc()
				}
			}
		}

		// 3. 订单转CANCELLED
		o.MarkCancelled()
		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCancelledTotal.Inc()

	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, "order.cancelled", map[string]interface{}{
			"order_id": result.ID,
			"user_id":  result.UserID,
		})
	}

	return result, nil
}
