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

// UpdatePaymentUseCase 更新支付记录用例
// 支付状态被改为COMPLETED时,需要通过支付ID反查订单并补做发货/扣库存
type UpdatePaymentUseCase struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	bookRepo    book.Repository
	invRepo     inventory.Repository
	txManager   TxManager
}

// NewUpdatePaymentUseCase 创建支付更新用例
func NewUpdatePaymentUseCase(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	bookRepo book.Repository,
	invRepo inventory.Repository,
	txManager TxManager,
) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		invRepo:     invRepo,
		txManager:   txManager,
	}
}

// UpdatePaymentRequest 支付更新请求DTO
type UpdatePaymentRequest struct {
	Method      string
	Status      string
	Amount      int64
	ReferenceNo string
}

// Execute 更新支付记录
// 业务规则:
//   - 全量覆盖方式/状态/金额/参考号,重新盖支付时间戳
//   - 状态转为COMPLETED且关联订单仍为PENDING时,补做发货与库存扣减
//   - 订单已发货后不会重复扣减
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, paymentID uint, req UpdatePaymentRequest) (*payment.Payment, error) {
	status := payment.Status(req.Status)
	if !status.Valid() {
		return nil, payment.ErrInvalidStatus
	}
	if req.Amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	var result *payment.Payment
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := uc.paymentRepo.FindByID(txCtx, paymentID)
		if err != nil {
			return err
		}

		// 全量覆盖并重新盖时间戳
		p.Method = req.Method
		p.Status = status
		p.Amount = req.Amount
		p.ReferenceNo = req.ReferenceNo
		p.PaymentDate = time.Now()

		if err := uc.paymentRepo.Update(txCtx, p); err != nil {
			return err
		}

		// 状态转COMPLETED时反查订单补做副作用
		if p.IsCompleted() {
			o, err := uc.orderRepo.FindByPaymentID(txCtx, p.ID)
			if err != nil {
				if err == order.ErrOrderNotFound {
					// 支付未关联订单,无副作用可补
					result = p
					return nil
				}
				return err
			}

			// 订单仍未发货才扣减,避免重复扣库存
			if o.Status == order.StatusPending {
				o.MarkShipped()
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
				if err := uc.orderRepo.Update(txCtx, o); err != nil {
					return err
				}
			}
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
