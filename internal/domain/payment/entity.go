package payment

import (
	"time"

	"github.com/google/uuid"
)

// Status 支付状态
// 封闭枚举:PENDING/COMPLETED/FAILED/REFUNDED
type Status string

const (
	StatusPending   Status = "PENDING"   // 待处理
	StatusCompleted Status = "COMPLETED" // 已完成(订单转SHIPPED,库存已扣减)
	StatusFailed    Status = "FAILED"    // 失败(订单保持PENDING)
	StatusRefunded  Status = "REFUNDED"  // 已退款(订单取消时回补库存)
)

// Valid 检查是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// Payment 支付记录实体
// 设计说明:
// 1. 金额使用int64存储"分"为单位
// 2. ReferenceNo为对外参考号,创建时若未提供则生成UUID
// 3. 与订单的关联由Order.PaymentID持有(订单侧外键)
type Payment struct {
	ID          uint
	PaymentDate time.Time // 支付日期(处理时间戳)
	Method      string    // 支付方式(CREDIT_CARD/ALIPAY等,仅记录)
	Status      Status    // 支付状态
	Amount      int64     // 金额(分)
	ReferenceNo string    // 支付参考号
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewReferenceNo 生成支付参考号
func NewReferenceNo() string {
	return "PAY-" + uuid.NewString()
}

// IsCompleted 是否已完成
func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}
