// Package inventory 库存应用层用例
package inventory

import (
	"context"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/pkg/metrics"
)

// TxManager 事务管理接口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ApplyTransactionUseCase 应用库存流水用例
// 按流水类型对图书库存生效:Purchase扣减,Restock回补
type ApplyTransactionUseCase struct {
	invRepo   inventory.Repository
	bookRepo  book.Repository
	txManager TxManager
}

// NewApplyTransactionUseCase 创建库存流水应用用例
func NewApplyTransactionUseCase(
	invRepo inventory.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *ApplyTransactionUseCase {
	return &ApplyTransactionUseCase{
		invRepo:   invRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// ApplyTransactionRequest 库存流水更新请求DTO
type ApplyTransactionRequest struct {
	BookID   uint
	Type     string
	Quantity int
	Notes    string
}

// Execute 应用库存流水
// 业务规则:
//   - 流水必须存在,数量为正,类型合法
//   - 锁定图书行后生效:Purchase先校验库存充足再扣减,Restock直接回补
//   - 流水记录与库存变更在同一事务内落库
func (uc *ApplyTransactionUseCase) Execute(ctx context.Context, transactionID uint, req ApplyTransactionRequest) (*inventory.Transaction, error) {
	txType, err := inventory.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}

	var result *inventory.Transaction
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		t, err := uc.invRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		// 锁定图书行后再变更库存
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		switch txType {
		case inventory.TypePurchase:
			if err := b.DecrStock(req.Quantity); err != nil {
				return err
			}
			metrics.StockAdjustmentsTotal.WithLabelValues("purchase").Inc()
		case inventory.TypeRestock:
			if err := b.IncrStock(req.Quantity); err != nil {
				return err
			}
			metrics.StockAdjustmentsTotal.WithLabelValues("restock").Inc()
		default:
			return inventory.ErrInvalidType
		}

		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 同步更新流水记录本身
		t.BookID = req.BookID
		t.Type = txType
		t.Quantity = req.Quantity
		t.Notes = req.Notes
		if err := uc.invRepo.Update(txCtx, t); err != nil {
			return err
		}

		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
