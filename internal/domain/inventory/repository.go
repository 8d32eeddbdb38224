package inventory

import (
	"context"
)

// Repository 库存流水仓储接口
type Repository interface {
	// Create 创建流水记录
	Create(ctx context.Context, tx *Transaction) error

	// FindByID 根据ID查找流水
	FindByID(ctx context.Context, id uint) (*Transaction, error)

	// FindAll 查询所有流水
	FindAll(ctx context.Context) ([]*Transaction, error)

	// FindByBookID 查询图书的所有流水
	FindByBookID(ctx context.Context, bookID uint) ([]*Transaction, error)

	// Update 更新流水记录
	Update(ctx context.Context, tx *Transaction) error

	// Delete 删除流水记录
	Delete(ctx context.Context, id uint) error
}
