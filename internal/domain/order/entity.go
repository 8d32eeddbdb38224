package order

import (
	"time"
)

// Status 订单状态
// 设计说明:
// 1. 封闭枚举:合法值只有PENDING/SHIPPED/CANCELLED,绑定层校验
// 2. 底层使用string(即对外的线格式),避免数字码与JSON表示脱节
type Status string

const (
	StatusPending   Status = "PENDING"   // 待支付
	StatusShipped   Status = "SHIPPED"   // 已发货(支付完成,库存已扣减)
	StatusCancelled Status = "CANCELLED" // 已取消(终态,已回补)
)

// Valid 检查是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体
// 2. PaymentID在支付处理后回填(可为空)
// 3. 状态流转:PENDING→SHIPPED(支付完成)、PENDING→CANCELLED(取消),
//    SHIPPED和CANCELLED均为终态
type Order struct {
	ID                uint
	OrderDate         time.Time   // 下单时间
	Status            Status      // 订单状态
	UserID            uint        // 买家用户ID
	ShippingAddressID uint        // 收货地址ID
	PaymentID         *uint       // 关联支付ID(未支付时为nil)
	Items             []OrderItem // 订单明细(聚合内的子实体)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. UnitPrice记录"下单时的价格"(历史价格快照)
// 3. TotalPrice = UnitPrice × Quantity,创建时计算一次,之后不再重算
type OrderItem struct {
	ID         uint
	OrderID    uint  // 所属订单ID
	BookID     uint  // 图书ID
	Quantity   int   // 购买数量
	UnitPrice  int64 // 下单时的单价(分)
	TotalPrice int64 // 明细总价(分),创建时快照
}

// NewOrder 创建新订单(工厂方法)
// 初始状态强制为PENDING,下单时间取当前时间
func NewOrder(userID, shippingAddressID uint, items []OrderItem) *Order {
	now := time.Now()
	return &Order{
		OrderDate:         now,
		Status:            StatusPending,
		UserID:            userID,
		ShippingAddressID: shippingAddressID,
		Items:             items,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// CanModify 检查订单是否还允许修改/取消
// 业务规则:已发货订单不允许任何修改
func (o *Order) CanModify() bool {
	return o.Status != StatusShipped
}

// MarkShipped 标记为已发货(支付完成后调用)
func (o *Order) MarkShipped() {
	o.Status = StatusShipped
	o.UpdatedAt = time.Now()
}

// MarkCancelled 标记为已取消
func (o *Order) MarkCancelled() {
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
}

// LinkPayment 关联支付记录
func (o *Order) LinkPayment(paymentID uint) {
	o.PaymentID = &paymentID
	o.UpdatedAt = time.Now()
}

// CalculateTotal 计算订单总金额(根据明细实时汇总)
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}
