package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// Create 创建购物车
	Create(ctx context.Context, cart *ShoppingCart) error

	// FindByID 根据ID查找购物车(包含条目)
	FindByID(ctx context.Context, id uint) (*ShoppingCart, error)

	// FindByUserID 根据用户ID查找购物车(包含条目)
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Update 更新购物车(时间戳)
	Update(ctx context.Context, cart *ShoppingCart) error
}

// ItemRepository 购物车条目仓储接口
type ItemRepository interface {
	// Create 创建条目
	Create(ctx context.Context, item *CartItem) error

	// FindByID 根据ID查找条目
	FindByID(ctx context.Context, id uint) (*CartItem, error)

	// FindByCartAndBook 根据(购物车,图书)组合查找条目
	// 同一本书重复加购时用于定位已有条目
	FindByCartAndBook(ctx context.Context, cartID, bookID uint) (*CartItem, error)

	// FindAll 查询所有条目
	FindAll(ctx context.Context) ([]*CartItem, error)

	// Update 更新条目
	Update(ctx context.Context, item *CartItem) error

	// Delete 删除条目
	Delete(ctx context.Context, id uint) error
}
