package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/order"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 教学要点:
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM通过foreignKey自动保存关联的Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(包含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByPaymentID 根据支付ID反查订单
func (r *orderRepository) FindByPaymentID(ctx context.Context, paymentID uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Where("payment_id = ?", paymentID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindAll 查询所有订单(包含明细)
func (r *orderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	if err := getDB(ctx, r.db).Preload("Items").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, nil
}

// Update 更新订单(状态、支付关联)
// 明细在创建后不再变化,这里只更新订单本身的字段
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":     string(o.Status),
			"payment_id": o.PaymentID,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return &OrderModel{
		OrderDate:         o.OrderDate,
		Status:            string(o.Status),
		UserID:            o.UserID,
		ShippingAddressID: o.ShippingAddressID,
		PaymentID:         o.PaymentID,
		Items:             items,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:         item.ID,
			OrderID:    item.OrderID,
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return &order.Order{
		ID:                model.ID,
		OrderDate:         model.OrderDate,
		Status:            order.Status(model.Status),
		UserID:            model.UserID,
		ShippingAddressID: model.ShippingAddressID,
		PaymentID:         model.PaymentID,
		Items:             items,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
