package inventory

import (
	"strings"
	"time"
)

// TransactionType 库存流水类型
// Purchase=售出扣减,Restock=补货增加
type TransactionType string

const (
	TypePurchase TransactionType = "Purchase" // 售出(扣减库存)
	TypeRestock  TransactionType = "Restock"  // 补货(增加库存)
)

// ParseTransactionType 解析流水类型(大小写不敏感)
// 非法类型返回ErrInvalidType
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(s) {
	case "purchase":
		return TypePurchase, nil
	case "restock":
		return TypeRestock, nil
	default:
		return "", ErrInvalidType
	}
}

// Transaction 库存流水实体
// 设计说明:
// 1. 只增审计记录(Append-Only思想):所有库存变动必须可追溯
// 2. AddTransaction只记账不动库存;ApplyTransaction(应用流水)才调整库存
// 3. 订单支付/取消流程也会写入流水,保证每次库存变动都有对应记录
type Transaction struct {
	ID              uint
	BookID          uint            // 图书ID
	Type            TransactionType // 流水类型
	Quantity        int             // 数量(始终为正,方向由Type决定)
	TransactionDate time.Time       // 流水日期
	Notes           string          // 备注
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPurchaseTransaction 创建售出流水(订单支付完成时记账)
func NewPurchaseTransaction(bookID uint, quantity int, notes string) *Transaction {
	return newTransaction(bookID, TypePurchase, quantity, notes)
}

// NewRestockTransaction 创建补货流水(订单取消回补时记账)
func NewRestockTransaction(bookID uint, quantity int, notes string) *Transaction {
	return newTransaction(bookID, TypeRestock, quantity, notes)
}

func newTransaction(bookID uint, t TransactionType, quantity int, notes string) *Transaction {
	now := time.Now()
	return &Transaction{
		BookID:          bookID,
		Type:            t,
		Quantity:        quantity,
		TransactionDate: now,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
