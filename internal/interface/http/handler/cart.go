package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kovan/bookshop/internal/domain/cart"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	cartService cart.Service
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartService cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes 注册购物车路由
// 购物车按用户维度访问,条目按自身ID维护
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts")
	{
		carts.GET("/:userId", h.GetCart)
		carts.POST("/:userId/items", h.AddToCart)
		carts.DELETE("/:userId/items/:itemId", h.RemoveFromCart)
	}
	items := rg.Group("/cart-items")
	{
		items.GET("", h.ListCartItems)
		items.PUT("/:id", h.UpdateCartItem)
		items.DELETE("/:id", h.DeleteCartItem)
	}
}

// GetCart 获取用户购物车
// 购物车不存在时懒创建
// @Summary      获取用户购物车
// @Tags         购物车
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/carts/{userId} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	sc, err := h.cartService.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCartResponse(sc))
}

// AddToCart 加入购物车
// 同一本书重复加购时累加数量
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        userId path int true "用户ID"
// @Param        request body dto.AddToCartRequest true "加购信息"
// @Success      200 {object} response.Response{data=dto.CartItemResponse}
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /api/v1/carts/{userId}/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.cartService.AddToCart(c.Request.Context(), userID, req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCartItemResponse(item))
}

// RemoveFromCart 从购物车移除条目
// @Summary      从购物车移除条目
// @Tags         购物车
// @Produce      json
// @Param        userId path int true "用户ID"
// @Param        itemId path int true "条目ID"
// @Success      204 {object} nil
// @Failure      400 {object} response.Response "条目不属于该购物车"
// @Router       /api/v1/carts/{userId}/items/{itemId} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.cartService.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListCartItems 查询所有购物车条目
// @Summary      查询所有购物车条目
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CartItemResponse}
// @Router       /api/v1/cart-items [get]
func (h *CartHandler) ListCartItems(c *gin.Context) {
	items, err := h.cartService.ListCartItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCartItemResponses(items))
}

// UpdateCartItem 更新购物车条目数量
// @Summary      更新购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        id path int true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=dto.CartItemResponse}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart-items/{id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.cartService.UpdateCartItem(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCartItemResponse(item))
}

// DeleteCartItem 删除购物车条目
// @Summary      删除购物车条目
// @Tags         购物车
// @Produce      json
// @Param        id path int true "条目ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart-items/{id} [delete]
func (h *CartHandler) DeleteCartItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.DeleteCartItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
