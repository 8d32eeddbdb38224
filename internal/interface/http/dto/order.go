package dto

import (
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
)

// CreateOrderRequest HTTP下单请求
type CreateOrderRequest struct {
	UserID            uint                     `json:"user_id" binding:"required" example:"1"`
	ShippingAddressID uint                     `json:"shipping_address_id" binding:"required" example:"1"`
	Items             []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest 订单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateOrderRequest HTTP更新订单请求(仅允许改状态)
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING SHIPPED CANCELLED" example:"SHIPPED"`
}

// OrderItemResponse HTTP订单明细响应
type OrderItemResponse struct {
	ID         uint   `json:"id" example:"1"`
	OrderID    uint   `json:"order_id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	Quantity   int    `json:"quantity" example:"2"`
	UnitPrice  int64  `json:"unit_price" example:"5900"`
	TotalPrice int64  `json:"total_price" example:"11800"`
	TotalYuan  string `json:"total_yuan" example:"118.00"`
}

// OrderResponse HTTP订单响应(含明细)
type OrderResponse struct {
	ID                uint                 `json:"id" example:"1"`
	OrderDate         string               `json:"order_date" example:"2024-01-15 10:30:00"`
	Status            string               `json:"status" example:"PENDING"`
	UserID            uint                 `json:"user_id" example:"1"`
	ShippingAddressID uint                 `json:"shipping_address_id" example:"1"`
	PaymentID         *uint                `json:"payment_id,omitempty"`
	Items             []*OrderItemResponse `json:"items"`
	Total             int64                `json:"total" example:"11800"`
	TotalYuan         string               `json:"total_yuan" example:"118.00"`
	CreatedAt         string               `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt         string               `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToOrderItemResponse 领域实体 → HTTP响应
func ToOrderItemResponse(item *order.OrderItem) *OrderItemResponse {
	return &OrderItemResponse{
		ID:         item.ID,
		OrderID:    item.OrderID,
		BookID:     item.BookID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice,
		TotalYuan:  FormatPriceYuan(item.TotalPrice),
	}
}

// ToOrderResponse 领域实体 → HTTP响应
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]*OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	total := o.CalculateTotal()
	return &OrderResponse{
		ID:                o.ID,
		OrderDate:         o.OrderDate.Format("2006-01-02 15:04:05"),
		Status:            string(o.Status),
		UserID:            o.UserID,
		ShippingAddressID: o.ShippingAddressID,
		PaymentID:         o.PaymentID,
		Items:             items,
		Total:             total,
		TotalYuan:         FormatPriceYuan(total),
		CreatedAt:         o.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToOrderResponses 批量转换
func ToOrderResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}

// ProcessPaymentRequest HTTP支付处理请求
type ProcessPaymentRequest struct {
	Method      string `json:"method" binding:"required,max=50" example:"CREDIT_CARD"`
	Status      string `json:"status" binding:"required,oneof=PENDING COMPLETED FAILED REFUNDED" example:"COMPLETED"`
	Amount      int64  `json:"amount" binding:"required,min=1" example:"11800"`
	ReferenceNo string `json:"reference_no" binding:"omitempty,max=64"`
}

// UpdatePaymentRequest HTTP支付更新请求
type UpdatePaymentRequest = ProcessPaymentRequest

// PaymentResponse HTTP支付响应
type PaymentResponse struct {
	ID          uint   `json:"id" example:"1"`
	PaymentDate string `json:"payment_date" example:"2024-01-15 10:30:00"`
	Method      string `json:"method" example:"CREDIT_CARD"`
	Status      string `json:"status" example:"COMPLETED"`
	Amount      int64  `json:"amount" example:"11800"`
	AmountYuan  string `json:"amount_yuan" example:"118.00"`
	ReferenceNo string `json:"reference_no" example:"PAY-1a2b3c"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToPaymentResponse 领域实体 → HTTP响应
func ToPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		PaymentDate: p.PaymentDate.Format("2006-01-02 15:04:05"),
		Method:      p.Method,
		Status:      string(p.Status),
		Amount:      p.Amount,
		AmountYuan:  FormatPriceYuan(p.Amount),
		ReferenceNo: p.ReferenceNo,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToPaymentResponses 批量转换
func ToPaymentResponses(payments []*payment.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return out
}
