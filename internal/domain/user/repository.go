package user

import (
	"context"
)

// Repository 用户仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll 查询所有用户
	FindAll(ctx context.Context) ([]*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	Delete(ctx context.Context, id uint) error
}

// AddressRepository 地址仓储接口
type AddressRepository interface {
	// Create 创建地址
	Create(ctx context.Context, address *Address) error

	// FindByID 根据ID查找地址
	FindByID(ctx context.Context, id uint) (*Address, error)

	// FindAll 查询所有地址
	FindAll(ctx context.Context) ([]*Address, error)

	// FindByUserID 查询用户的所有地址
	FindByUserID(ctx context.Context, userID uint) ([]*Address, error)

	// Update 更新地址
	Update(ctx context.Context, address *Address) error

	// Delete 删除地址
	Delete(ctx context.Context, id uint) error
}
