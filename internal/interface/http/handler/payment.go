package handler

import (
	"github.com/gin-gonic/gin"

	apppayment "github.com/kovan/bookshop/internal/application/payment"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// PaymentHandler 支付HTTP处理器
type PaymentHandler struct {
	paymentService        payment.Service
	processPaymentUseCase *apppayment.ProcessPaymentUseCase
	updatePaymentUseCase  *apppayment.UpdatePaymentUseCase
}

// NewPaymentHandler 创建支付处理器
func NewPaymentHandler(
	paymentService payment.Service,
	processPaymentUseCase *apppayment.ProcessPaymentUseCase,
	updatePaymentUseCase *apppayment.UpdatePaymentUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:        paymentService,
		processPaymentUseCase: processPaymentUseCase,
		updatePaymentUseCase:  updatePaymentUseCase,
	}
}

// RegisterRoutes 注册支付路由
// 支付处理挂在订单下(语义上是"为订单支付"),其余按支付资源维护
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/payments", h.ProcessPayment)
	payments := rg.Group("/payments")
	{
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)
		payments.PUT("/:id", h.UpdatePayment)
		payments.DELETE("/:id", h.DeletePayment)
	}
}

// ProcessPayment 处理订单支付
// @Summary      处理订单支付
// @Description  仅PENDING订单可支付;COMPLETED则订单发货并扣减库存,FAILED则订单保持PENDING
// @Tags         支付
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body dto.ProcessPaymentRequest true "支付信息"
// @Success      201 {object} response.Response{data=dto.PaymentResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "订单非待支付状态或库存不足"
// @Router       /api/v1/orders/{id}/payments [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.processPaymentUseCase.Execute(c.Request.Context(), orderID, apppayment.ProcessPaymentRequest{
		Method:      req.Method,
		Status:      req.Status,
		Amount:      req.Amount,
		ReferenceNo: req.ReferenceNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPaymentResponse(p))
}

// GetPayment 查询支付记录
// @Summary      查询支付详情
// @Tags         支付
// @Produce      json
// @Param        id path int true "支付ID"
// @Success      200 {object} response.Response{data=dto.PaymentResponse}
// @Failure      404 {object} response.Response "支付记录不存在"
// @Router       /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	p, err := h.paymentService.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPaymentResponse(p))
}

// ListPayments 查询支付列表
// @Summary      查询所有支付记录
// @Tags         支付
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.PaymentResponse}
// @Router       /api/v1/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPaymentResponses(payments))
}

// UpdatePayment 更新支付记录
// @Summary      更新支付记录
// @Description  全量覆盖;状态转COMPLETED时反查订单补做发货和扣库存
// @Tags         支付
// @Accept       json
// @Produce      json
// @Param        id path int true "支付ID"
// @Param        request body dto.UpdatePaymentRequest true "支付信息"
// @Success      200 {object} response.Response{data=dto.PaymentResponse}
// @Failure      404 {object} response.Response "支付记录不存在"
// @Router       /api/v1/payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.updatePaymentUseCase.Execute(c.Request.Context(), id, apppayment.UpdatePaymentRequest{
		Method:      req.Method,
		Status:      req.Status,
		Amount:      req.Amount,
		ReferenceNo: req.ReferenceNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPaymentResponse(p))
}

// DeletePayment 删除支付记录
// @Summary      删除支付记录
// @Description  已完成(COMPLETED)的支付不可删除
// @Tags         支付
// @Produce      json
// @Param        id path int true "支付ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "支付记录不存在"
// @Failure      409 {object} response.Response "支付已完成"
// @Router       /api/v1/payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
