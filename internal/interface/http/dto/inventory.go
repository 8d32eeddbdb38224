package dto

import (
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/review"
)

// AddTransactionRequest HTTP创建库存流水请求
// 仅记账,不改库存;库存生效走PUT /inventory-transactions/:id
type AddTransactionRequest struct {
	BookID   uint   `json:"book_id" binding:"required" example:"1"`
	Type     string `json:"type" binding:"required" example:"Restock"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"50"`
	Notes    string `json:"notes" binding:"max=500" example:"补货入库"`
}

// ApplyTransactionRequest HTTP应用库存流水请求
type ApplyTransactionRequest = AddTransactionRequest

// TransactionResponse HTTP库存流水响应
type TransactionResponse struct {
	ID              uint   `json:"id" example:"1"`
	BookID          uint   `json:"book_id" example:"1"`
	Type            string `json:"type" example:"Restock"`
	Quantity        int    `json:"quantity" example:"50"`
	TransactionDate string `json:"transaction_date" example:"2024-01-15 10:30:00"`
	Notes           string `json:"notes" example:"补货入库"`
	CreatedAt       string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt       string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToTransactionResponse 领域实体 → HTTP响应
func ToTransactionResponse(t *inventory.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		BookID:          t.BookID,
		Type:            string(t.Type),
		Quantity:        t.Quantity,
		TransactionDate: t.TransactionDate.Format("2006-01-02 15:04:05"),
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToTransactionResponses 批量转换
func ToTransactionResponses(txs []*inventory.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// AddReviewRequest HTTP新增/更新评价请求
type AddReviewRequest struct {
	UserID  uint   `json:"user_id" binding:"required" example:"1"`
	BookID  uint   `json:"book_id" binding:"required" example:"1"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"max=5000" example:"非常好的一本书"`
}

// DeleteReviewRequest HTTP删除评价请求
type DeleteReviewRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"1"`
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// ReviewResponse HTTP评价响应
type ReviewResponse struct {
	ID         uint   `json:"id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	UserID     uint   `json:"user_id" example:"1"`
	Rating     int    `json:"rating" example:"5"`
	Comment    string `json:"comment" example:"非常好的一本书"`
	ReviewDate string `json:"review_date" example:"2024-01-15 10:30:00"`
	CreatedAt  string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt  string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToReviewResponse 领域实体 → HTTP响应
func ToReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate.Format("2006-01-02 15:04:05"),
		CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToReviewResponses 批量转换
func ToReviewResponses(reviews []*review.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ToReviewResponse(r)
	}
	return out
}
