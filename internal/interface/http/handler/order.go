package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/kovan/bookshop/internal/application/order"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 创建和取消走应用层用例(跨聚合事务),查询和状态更新走领域服务
type OrderHandler struct {
	orderService       order.Service
	createOrderUseCase *apporder.CreateOrderUseCase
	cancelOrderUseCase *apporder.CancelOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	orderService order.Service,
	createOrderUseCase *apporder.CreateOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		orderService:       orderService,
		createOrderUseCase: createOrderUseCase,
		cancelOrderUseCase: cancelOrderUseCase,
	}
}

// RegisterRoutes 注册订单路由
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/items", h.ListOrderItems)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.CancelOrder)
	}
}

// CreateOrder 创建订单
// @Summary      创建订单
// @Description  校验用户和收货地址,按下单时刻价格生成明细快照,状态强制PENDING
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "用户/地址/图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: item.BookID, Quantity: item.Quantity}
	}

	o, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:            req.UserID,
		ShippingAddressID: req.ShippingAddressID,
		Items:             items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOrderResponse(o))
}

// GetOrder 查询订单
// @Summary      查询订单详情(含明细)
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(o))
}

// ListOrders 查询订单列表
// @Summary      查询所有订单
// @Tags         订单
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponses(orders))
}

// ListOrderItems 查询订单明细
// @Summary      查询订单明细
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]dto.OrderItemResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/items [get]
func (h *OrderHandler) ListOrderItems(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = dto.ToOrderItemResponse(&o.Items[i])
	}
	response.Success(c, items)
}

// UpdateOrder 更新订单状态
// @Summary      更新订单状态
// @Description  已发货(SHIPPED)订单不可修改
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderRequest true "订单状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "订单已发货"
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(o))
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  已发货订单不可取消;已完成支付转退款并回补库存
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "订单已发货"
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	o, err := h.cancelOrderUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(o))
}
