package inventory

import (
	"context"

	"github.com/kovan/bookshop/internal/domain/book"
)

// Service 库存流水领域服务
// 说明:
// AddTransaction只记账,不调整库存;应用流水(调整库存+改写流水)是跨聚合
// 的事务流程,由application层的用例实现。
type Service interface {
	// AddTransaction 记录一条库存流水(不调整库存)
	// 业务规则:图书必须存在,数量必须>0,类型必须合法
	AddTransaction(ctx context.Context, bookID uint, transactionType string, quantity int, notes string) (*Transaction, error)

	// GetTransactionByID 根据ID获取流水
	GetTransactionByID(ctx context.Context, id uint) (*Transaction, error)

	// ListTransactions 查询所有流水
	ListTransactions(ctx context.Context) ([]*Transaction, error)

	// ListTransactionsByBook 查询图书的所有流水
	ListTransactionsByBook(ctx context.Context, bookID uint) ([]*Transaction, error)

	// DeleteTransaction 删除流水(存在性预检查)
	DeleteTransaction(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建库存流水领域服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

// AddTransaction 记录一条库存流水
func (s *service) AddTransaction(ctx context.Context, bookID uint, transactionType string, quantity int, notes string) (*Transaction, error) {
	// 1. 类型校验(大小写不敏感)
	t, err := ParseTransactionType(transactionType)
	if err != nil {
		return nil, err
	}

	// 2. 数量校验
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// 3. 图书存在性校验
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 4. 记账(不调整库存)
	tx := newTransaction(bookID, t, quantity, notes)
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *service) GetTransactionByID(ctx context.Context, id uint) (*Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) ListTransactionsByBook(ctx context.Context, bookID uint) ([]*Transaction, error) {
	return s.repo.FindByBookID(ctx, bookID)
}

// DeleteTransaction 删除流水
func (s *service) DeleteTransaction(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
