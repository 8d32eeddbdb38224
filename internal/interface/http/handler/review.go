package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kovan/bookshop/internal/domain/review"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// ReviewHandler 评价HTTP处理器
type ReviewHandler struct {
	reviewService review.Service
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes 注册评价路由
// 删除按(user_id, book_id)组合定位,与新增/更新对称
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", h.AddOrUpdateReview)
		reviews.GET("", h.ListReviews)
		reviews.GET("/:id", h.GetReview)
		reviews.DELETE("", h.DeleteReview)
	}
}

// AddOrUpdateReview 新增或更新评价
// @Summary      新增或更新评价
// @Description  同一(用户,图书)组合重复提交时原地更新
// @Tags         评价
// @Accept       json
// @Produce      json
// @Param        request body dto.AddReviewRequest true "评价信息"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "评分不合法"
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) AddOrUpdateReview(c *gin.Context) {
	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.reviewService.AddOrUpdateReview(c.Request.Context(),
		req.UserID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponse(r))
}

// GetReview 查询评价
// @Summary      查询评价详情
// @Tags         评价
// @Produce      json
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	r, err := h.reviewService.GetReviewByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponse(r))
}

// ListReviews 查询评价列表
// 支持?book_id=过滤某图书的评价
// @Summary      查询评价列表
// @Tags         评价
// @Produce      json
// @Param        book_id query int false "按图书过滤"
// @Success      200 {object} response.Response{data=[]dto.ReviewResponse}
// @Router       /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	if bookID := c.Query("book_id"); bookID != "" {
		id, ok := parseUintQuery(c, "book_id")
		if !ok {
			return
		}
		reviews, err := h.reviewService.ListReviewsByBook(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ToReviewResponses(reviews))
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponses(reviews))
}

// DeleteReview 删除评价
// @Summary      删除用户对图书的评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Param        request body dto.DeleteReviewRequest true "定位信息"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	var req dto.DeleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), req.UserID, req.BookID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
