package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. CategoryID关联所属分类
type Book struct {
	ID              uint
	Title           string // 书名
	Author          string // 作者
	Genre           string // 体裁
	Price           int64  // 价格(单位:分,1元=100分)
	ISBN            string // ISBN号(国际标准书号)
	PublicationYear int    // 出版年份
	Publisher       string // 出版社
	Stock           int    // 库存数量
	Description     string // 图书描述
	CoverImage      string // 封面图片URL
	CategoryID      uint   // 所属分类ID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DecrStock 扣减库存(用于支付完成、库存流水)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(用于订单取消、补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}
