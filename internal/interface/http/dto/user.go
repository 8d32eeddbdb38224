// Package dto HTTP请求/响应数据传输对象
package dto

import "github.com/kovan/bookshop/internal/domain/user"

// CreateUserRequest HTTP创建用户请求
type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50" example:"三"`
	LastName    string `json:"last_name" binding:"required,max=50" example:"张"`
	Email       string `json:"email" binding:"required,email,max=100" example:"zhangsan@example.com"`
	Password    string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"1990-05-20"`
	Role        string `json:"role" binding:"omitempty,max=20" example:"customer"`
}

// UpdateUserRequest HTTP更新用户请求
// Password为空表示不修改密码
type UpdateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Password    string `json:"password" binding:"omitempty,min=6,max=72"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Role        string `json:"role" binding:"omitempty,max=20"`
}

// UserResponse HTTP用户响应
// 不回传密码哈希
type UserResponse struct {
	ID          uint   `json:"id" example:"1"`
	FirstName   string `json:"first_name" example:"三"`
	LastName    string `json:"last_name" example:"张"`
	Email       string `json:"email" example:"zhangsan@example.com"`
	DateOfBirth string `json:"date_of_birth" example:"1990-05-20"`
	Role        string `json:"role" example:"customer"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToUserResponse 领域实体 → HTTP响应
func ToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToUserResponses 批量转换
func ToUserResponses(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

// CreateAddressRequest HTTP创建地址请求
type CreateAddressRequest struct {
	UserID     uint   `json:"user_id" binding:"required" example:"1"`
	Street     string `json:"street" binding:"required,max=200" example:"人民路100号"`
	City       string `json:"city" binding:"required,max=100" example:"上海"`
	State      string `json:"state" binding:"omitempty,max=100" example:"上海"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20" example:"200000"`
	Country    string `json:"country" binding:"required,max=100" example:"中国"`
}

// UpdateAddressRequest HTTP更新地址请求
type UpdateAddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"omitempty,max=100"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
}

// AddressResponse HTTP地址响应
type AddressResponse struct {
	ID         uint   `json:"id" example:"1"`
	UserID     uint   `json:"user_id" example:"1"`
	Street     string `json:"street" example:"人民路100号"`
	City       string `json:"city" example:"上海"`
	State      string `json:"state" example:"上海"`
	PostalCode string `json:"postal_code" example:"200000"`
	Country    string `json:"country" example:"中国"`
	CreatedAt  string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt  string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToAddressResponse 领域实体 → HTTP响应
func ToAddressResponse(a *user.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ToAddressResponses 批量转换
func ToAddressResponses(addresses []*user.Address) []*AddressResponse {
	out := make([]*AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = ToAddressResponse(a)
	}
	return out
}
