package cart

import (
	"time"
)

// ShoppingCart 购物车实体(聚合根)
// 每个用户最多一个购物车,首次访问时自动创建
type ShoppingCart struct {
	ID        uint
	UserID    uint       // 所属用户ID
	Items     []CartItem // 购物车条目
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车条目
// (cart, book)组合唯一:同一本书重复加购时累加数量
type CartItem struct {
	ID        uint
	CartID    uint // 所属购物车ID
	BookID    uint // 图书ID
	Quantity  int  // 数量
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owns 检查条目是否属于此购物车
func (c *ShoppingCart) Owns(item *CartItem) bool {
	return c.ID == item.CartID
}
