package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService book.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService book.Service) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes 注册图书路由
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.POST("", h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.bookService.CreateBook(c.Request.Context(), &book.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		Price:           req.Price,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Publisher:       req.Publisher,
		Stock:           req.Stock,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToBookResponse(b))
}

// GetBook 查询图书
// @Summary      查询图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.bookService.GetBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b))
}

// ListBooks 查询图书列表
// 支持?isbn=精确查询单本
// @Summary      查询图书列表
// @Tags         图书
// @Produce      json
// @Param        isbn query string false "按ISBN精确查询"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	if isbn := c.Query("isbn"); isbn != "" {
		b, err := h.bookService.GetBookByISBN(c.Request.Context(), isbn)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, []*dto.BookResponse{dto.ToBookResponse(b)})
		return
	}

	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponses(books))
}

// UpdateBook 更新图书
// @Summary      更新图书(全量覆盖)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.bookService.UpdateBook(c.Request.Context(), id, &book.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		Price:           req.Price,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Publisher:       req.Publisher,
		Stock:           req.Stock,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
