package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/kovan/bookshop/internal/application/inventory"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// InventoryHandler 库存流水HTTP处理器
// 创建只记账,PUT应用流水才变更库存
type InventoryHandler struct {
	inventoryService        inventory.Service
	applyTransactionUseCase *appinventory.ApplyTransactionUseCase
}

// NewInventoryHandler 创建库存流水处理器
func NewInventoryHandler(
	inventoryService inventory.Service,
	applyTransactionUseCase *appinventory.ApplyTransactionUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		inventoryService:        inventoryService,
		applyTransactionUseCase: applyTransactionUseCase,
	}
}

// RegisterRoutes 注册库存流水路由
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	txs := rg.Group("/inventory-transactions")
	{
		txs.POST("", h.AddTransaction)
		txs.GET("", h.ListTransactions)
		txs.GET("/:id", h.GetTransaction)
		txs.PUT("/:id", h.ApplyTransaction)
		txs.DELETE("/:id", h.DeleteTransaction)
	}
}

// AddTransaction 创建库存流水(仅记账)
// @Summary      创建库存流水
// @Description  校验图书存在后记账,不改库存
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.AddTransactionRequest true "流水信息"
// @Success      201 {object} response.Response{data=dto.TransactionResponse}
// @Failure      400 {object} response.Response "流水类型非法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/inventory-transactions [post]
func (h *InventoryHandler) AddTransaction(c *gin.Context) {
	var req dto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	t, err := h.inventoryService.AddTransaction(c.Request.Context(),
		req.BookID, req.Type, req.Quantity, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToTransactionResponse(t))
}

// GetTransaction 查询库存流水
// @Summary      查询库存流水详情
// @Tags         库存
// @Produce      json
// @Param        id path int true "流水ID"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "流水不存在"
// @Router       /api/v1/inventory-transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	t, err := h.inventoryService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToTransactionResponse(t))
}

// ListTransactions 查询库存流水列表
// 支持?book_id=过滤某图书的流水
// @Summary      查询库存流水列表
// @Tags         库存
// @Produce      json
// @Param        book_id query int false "按图书过滤"
// @Success      200 {object} response.Response{data=[]dto.TransactionResponse}
// @Router       /api/v1/inventory-transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	if bookID := c.Query("book_id"); bookID != "" {
		id, ok := parseUintQuery(c, "book_id")
		if !ok {
			return
		}
		txs, err := h.inventoryService.ListTransactionsByBook(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ToTransactionResponses(txs))
		return
	}

	txs, err := h.inventoryService.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToTransactionResponses(txs))
}

// ApplyTransaction 应用库存流水
// @Summary      应用库存流水
// @Description  锁定图书后生效:Purchase扣减(不足则失败),Restock回补
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        id path int true "流水ID"
// @Param        request body dto.ApplyTransactionRequest true "流水信息"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      400 {object} response.Response "流水类型非法"
// @Failure      404 {object} response.Response "流水或图书不存在"
// @Failure      409 {object} response.Response "库存不足"
// @Router       /api/v1/inventory-transactions/{id} [put]
func (h *InventoryHandler) ApplyTransaction(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	t, err := h.applyTransactionUseCase.Execute(c.Request.Context(), id, appinventory.ApplyTransactionRequest{
		BookID:   req.BookID,
		Type:     req.Type,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToTransactionResponse(t))
}

// DeleteTransaction 删除库存流水
// @Summary      删除库存流水
// @Tags         库存
// @Produce      json
// @Param        id path int true "流水ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "流水不存在"
// @Router       /api/v1/inventory-transactions/{id} [delete]
func (h *InventoryHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
