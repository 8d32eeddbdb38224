package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kovan/bookshop/internal/domain/user"
	"github.com/kovan/bookshop/internal/interface/http/dto"
	"github.com/kovan/bookshop/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	userService user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes 注册用户路由
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// CreateUser 创建用户
// @Summary      创建用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.userService.CreateUser(c.Request.Context(),
		req.FirstName, req.LastName, req.Email, req.Password, req.DateOfBirth, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToUserResponse(u))
}

// GetUser 查询用户
// @Summary      查询用户详情
// @Tags         用户
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	u, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(u))
}

// ListUsers 查询用户列表
// @Summary      查询所有用户
// @Tags         用户
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponses(users))
}

// UpdateUser 更新用户
// @Summary      更新用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "用户信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.userService.UpdateUser(c.Request.Context(), id,
		req.FirstName, req.LastName, req.Email, req.Password, req.DateOfBirth, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(u))
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddressHandler 地址HTTP处理器
type AddressHandler struct {
	userService user.Service
}

// NewAddressHandler 创建地址处理器
func NewAddressHandler(userService user.Service) *AddressHandler {
	return &AddressHandler{userService: userService}
}

// RegisterRoutes 注册地址路由
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	{
		addresses.POST("", h.CreateAddress)
		addresses.GET("", h.ListAddresses)
		addresses.GET("/:id", h.GetAddress)
		addresses.PUT("/:id", h.UpdateAddress)
		addresses.DELETE("/:id", h.DeleteAddress)
	}
}

// CreateAddress 创建地址
// @Summary      创建地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateAddressRequest true "地址信息"
// @Success      201 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/addresses [post]
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.userService.CreateAddress(c.Request.Context(),
		req.UserID, req.Street, req.City, req.State, req.PostalCode, req.Country)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAddressResponse(a))
}

// GetAddress 查询地址
// @Summary      查询地址详情
// @Tags         地址
// @Produce      json
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [get]
func (h *AddressHandler) GetAddress(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	a, err := h.userService.GetAddressByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAddressResponse(a))
}

// ListAddresses 查询地址列表
// 支持?user_id=过滤某用户的地址
// @Summary      查询地址列表
// @Tags         地址
// @Produce      json
// @Param        user_id query int false "按用户过滤"
// @Success      200 {object} response.Response{data=[]dto.AddressResponse}
// @Router       /api/v1/addresses [get]
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	if userID := c.Query("user_id"); userID != "" {
		id, ok := parseUintQuery(c, "user_id")
		if !ok {
			return
		}
		addresses, err := h.userService.ListAddressesByUser(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ToAddressResponses(addresses))
		return
	}

	addresses, err := h.userService.ListAddresses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAddressResponses(addresses))
}

// UpdateAddress 更新地址
// @Summary      更新地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Param        id path int true "地址ID"
// @Param        request body dto.UpdateAddressRequest true "地址信息"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.userService.UpdateAddress(c.Request.Context(), id,
		req.Street, req.City, req.State, req.PostalCode, req.Country)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAddressResponse(a))
}

// DeleteAddress 删除地址
// @Summary      删除地址
// @Tags         地址
// @Produce      json
// @Param        id path int true "地址ID"
// @Success      204 {object} nil
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteAddress(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
