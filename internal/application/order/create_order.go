// Package order 订单应用层用例
package order

import (
	"context"
	"time"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/user"
	"github.com/kovan/bookshop/pkg/metrics"
)

// TxManager 事务管理接口
// 用例层只依赖接口,具体实现由基础设施层(GORM)提供
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// CreateOrderUseCase 创建订单用例
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	userRepo    user.Repository
	addressRepo user.AddressRepository
	bookRepo    book.Repository
	txManager   TxManager
	publisher   EventPublisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	userRepo user.Repository,
	addressRepo user.AddressRepository,
	bookRepo book.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		bookRepo:    bookRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	UserID            uint              // 买家用户ID
	ShippingAddressID uint              // 收货地址ID
	Items             []CreateOrderItem // 订单明细
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint // 图书ID
	Quantity int  // 购买数量
}

// Execute 执行下单用例
// 业务规则:
//   - 用户和收货地址必须存在
//   - 明细非空,数量为正
//   - 单价取下单时刻的图书价格快照,防止前端改价
//   - 订单状态强制为PENDING,库存在支付成功时才扣减
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	// 1. 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
	}

	// 2. 用户/地址存在性校验
	if _, err := uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err := uc.addressRepo.FindByID(ctx, req.ShippingAddressID); err != nil {
		return nil, err
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 3. 价格快照:使用数据库中的当前价格而非前端传值
		items := make([]order.OrderItem, len(req.Items))
		for i, item := range req.Items {
			b, err := uc.bookRepo.FindByID(txCtx, item.BookID)
			if err != nil {
				return err
			}
			items[i] = order.OrderItem{
				BookID:     item.BookID,
				Quantity:   item.Quantity,
				UnitPrice:  b.Price,
				TotalPrice: b.Price * int64(item.Quantity),
			}
		}

		// 4. 创建订单(状态强制PENDING)
		newOrder := order.NewOrder(req.UserID, req.ShippingAddressID, items)
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()

	// 发布订单创建事件(失败不影响主流程)
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, "order.created", map[string]interface{}{
			"order_id":   result.ID,
			"user_id":    result.UserID,
			"status":     string(result.Status),
			"order_date": result.OrderDate.Format(time.RFC3339),
		})
	}

	return result, nil
}
