package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindAll 查询所有图书
	FindAll(ctx context.Context) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书(用于支付/取消/库存流水中锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发修改库存导致超卖
	LockByID(ctx context.Context, id uint) (*Book, error)
}
