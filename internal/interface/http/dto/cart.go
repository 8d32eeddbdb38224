package dto

import "github.com/kovan/bookshop/internal/domain/cart"

// AddToCartRequest HTTP加购请求
type AddToCartRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateCartItemRequest HTTP更新购物车条目请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// CartItemResponse HTTP购物车条目响应
type CartItemResponse struct {
	ID        uint   `json:"id" example:"1"`
	CartID    uint   `json:"cart_id" example:"1"`
	BookID    uint   `json:"book_id" example:"1"`
	Quantity  int    `json:"quantity" example:"2"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// CartResponse HTTP购物车响应(含条目)
type CartResponse struct {
	ID        uint                `json:"id" example:"1"`
	UserID    uint                `json:"user_id" example:"1"`
	Items     []*CartItemResponse `json:"items"`
	CreatedAt string              `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string              `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToCartItemResponse 领域实体 → HTTP响应
func ToCartItemResponse(item *cart.CartItem) *CartItemResponse {
	return &CartItemResponse{
		ID:        item.ID,
		CartID:    item.CartID,
		BookID:    item.BookID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: item.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToCartItemResponses 批量转换
func ToCartItemResponses(items []*cart.CartItem) []*CartItemResponse {
	out := make([]*CartItemResponse, len(items))
	for i, item := range items {
		out[i] = ToCartItemResponse(item)
	}
	return out
}

// ToCartResponse 领域实体 → HTTP响应
func ToCartResponse(c *cart.ShoppingCart) *CartResponse {
	items := make([]*CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToCartItemResponse(&c.Items[i])
	}
	return &CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
