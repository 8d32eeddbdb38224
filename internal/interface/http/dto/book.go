package dto

import (
	"fmt"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/category"
)

// CreateBookRequest HTTP创建图书请求
// 价格单位为分(5900 = 59.00元),避免浮点精度问题
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author          string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Genre           string `json:"genre" binding:"omitempty,max=50" example:"技术"`
	Price           int64  `json:"price" binding:"required,min=1,max=99999999" example:"5900"`
	ISBN            string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	PublicationYear int    `json:"publication_year" binding:"omitempty,min=1000,max=9999" example:"2017"`
	Publisher       string `json:"publisher" binding:"omitempty,max=100" example:"人民邮电出版社"`
	Stock           int    `json:"stock" binding:"min=0" example:"100"`
	Description     string `json:"description" binding:"max=5000"`
	CoverImage      string `json:"cover_image" binding:"omitempty,url,max=500"`
	CategoryID      uint   `json:"category_id" binding:"required" example:"1"`
}

// UpdateBookRequest HTTP更新图书请求(全量覆盖)
type UpdateBookRequest = CreateBookRequest

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"Go语言实战"`
	Author          string `json:"author" example:"威廉·肯尼迪"`
	Genre           string `json:"genre" example:"技术"`
	Price           int64  `json:"price" example:"5900"`
	PriceYuan       string `json:"price_yuan" example:"59.00"`
	ISBN            string `json:"isbn" example:"9787115428028"`
	PublicationYear int    `json:"publication_year" example:"2017"`
	Publisher       string `json:"publisher" example:"人民邮电出版社"`
	Stock           int    `json:"stock" example:"100"`
	Description     string `json:"description"`
	CoverImage      string `json:"cover_image"`
	CategoryID      uint   `json:"category_id" example:"1"`
	CreatedAt       string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt       string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}

// ToBookResponse 领域实体 → HTTP响应
func ToBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		Price:           b.Price,
		PriceYuan:       FormatPriceYuan(b.Price),
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		Stock:           b.Stock,
		Description:     b.Description,
		CoverImage:      b.CoverImage,
		CategoryID:      b.CategoryID,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToBookResponses 批量转换
func ToBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}

// CreateCategoryRequest HTTP创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"计算机"`
	Description string `json:"description" binding:"max=500" example:"计算机技术类图书"`
}

// UpdateCategoryRequest HTTP更新分类请求
type UpdateCategoryRequest = CreateCategoryRequest

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"计算机"`
	Description string `json:"description" example:"计算机技术类图书"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToCategoryResponse 领域实体 → HTTP响应
func ToCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToCategoryResponses 批量转换
func ToCategoryResponses(categories []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out
}
