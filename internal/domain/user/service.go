package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、格式校验）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. 本服务不提供登录/鉴权,密码哈希只是持久化前的数据处理
type Service interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, firstName, lastName, email, password, dateOfBirth, role string) (*User, error)

	// GetUserByID 根据ID获取用户
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// ListUsers 查询所有用户
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateUser 全量更新用户信息
	// 业务规则:password非空时重新加密,为空时保留原密码哈希
	UpdateUser(ctx context.Context, id uint, firstName, lastName, email, password, dateOfBirth, role string) (*User, error)

	// DeleteUser 删除用户(存在性预检查)
	DeleteUser(ctx context.Context, id uint) error

	// CreateAddress 为用户创建地址
	CreateAddress(ctx context.Context, userID uint, street, city, state, postalCode, country string) (*Address, error)

	// GetAddressByID 根据ID获取地址
	GetAddressByID(ctx context.Context, id uint) (*Address, error)

	// ListAddresses 查询所有地址
	ListAddresses(ctx context.Context) ([]*Address, error)

	// ListAddressesByUser 查询用户的所有地址
	ListAddressesByUser(ctx context.Context, userID uint) ([]*Address, error)

	// UpdateAddress 全量更新地址
	UpdateAddress(ctx context.Context, id uint, street, city, state, postalCode, country string) (*Address, error)

	// DeleteAddress 删除地址(存在性预检查)
	DeleteAddress(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	addrRepo AddressRepository
}

// NewService 创建用户领域服务
func NewService(repo Repository, addrRepo AddressRepository) Service {
	return &service{repo: repo, addrRepo: addrRepo}
}

// CreateUser 创建用户
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码bcrypt加密（cost=12）
// 3. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) CreateUser(ctx context.Context, firstName, lastName, email, password, dateOfBirth, role string) (*User, error) {
	// 1. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	// 2. 密码加密
	// bcrypt自动加盐,cost=12平衡安全性与性能
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 3. 创建用户实体
	u := NewUser(firstName, lastName, email, string(hashed), dateOfBirth, role)

	// 4. 持久化
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// GetUserByID 根据ID获取用户
func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUsers 查询所有用户
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

// UpdateUser 全量更新用户信息
func (s *service) UpdateUser(ctx context.Context, id uint, firstName, lastName, email, password, dateOfBirth, role string) (*User, error) {
	// 1. 查询用户(NotFound则失败)
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	// 3. 覆盖字段
	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	u.DateOfBirth = dateOfBirth
	u.Role = role

	// 4. password非空时重新加密
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return nil, apperrors.Wrap(err, "密码加密失败")
		}
		u.Password = string(hashed)
	}

	// 5. 持久化
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteUser 删除用户
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	// 存在性预检查
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// CreateAddress 为用户创建地址
// 业务规则:所属用户必须存在
func (s *service) CreateAddress(ctx context.Context, userID uint, street, city, state, postalCode, country string) (*Address, error) {
	// 1. 用户存在性校验
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// 2. 创建地址
	addr := &Address{
		UserID:     userID,
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
	}
	if err := s.addrRepo.Create(ctx, addr); err != nil {
		return nil, err
	}

	return addr, nil
}

// GetAddressByID 根据ID获取地址
func (s *service) GetAddressByID(ctx context.Context, id uint) (*Address, error) {
	return s.addrRepo.FindByID(ctx, id)
}

// ListAddresses 查询所有地址
func (s *service) ListAddresses(ctx context.Context) ([]*Address, error) {
	return s.addrRepo.FindAll(ctx)
}

// ListAddressesByUser 查询用户的所有地址
func (s *service) ListAddressesByUser(ctx context.Context, userID uint) ([]*Address, error) {
	return s.addrRepo.FindByUserID(ctx, userID)
}

// UpdateAddress 全量更新地址
func (s *service) UpdateAddress(ctx context.Context, id uint, street, city, state, postalCode, country string) (*Address, error) {
	addr, err := s.addrRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addr.Street = street
	addr.City = city
	addr.State = state
	addr.PostalCode = postalCode
	addr.Country = country

	if err := s.addrRepo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// DeleteAddress 删除地址
func (s *service) DeleteAddress(ctx context.Context, id uint) error {
	if _, err := s.addrRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.addrRepo.Delete(ctx, id)
}

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}
