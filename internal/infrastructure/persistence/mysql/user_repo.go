package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/user"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如邮箱重复),转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Password:    u.Password,
		DateOfBirth: u.DateOfBirth,
		Role:        u.Role,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindAll 查询所有用户
func (r *userRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Password:    u.Password,
		DateOfBirth: u.DateOfBirth,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新用户失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除用户
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:          model.ID,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Email:       model.Email,
		Password:    model.Password,
		DateOfBirth: model.DateOfBirth,
		Role:        model.Role,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// addressRepository 地址仓储实现(MySQL)
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) user.AddressRepository {
	return &addressRepository{db: db}
}

// Create 创建地址
func (r *addressRepository) Create(ctx context.Context, a *user.Address) error {
	model := &AddressModel{
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*user.Address, error) {
	var model AddressModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	return toAddressEntity(&model), nil
}

// FindAll 查询所有地址
func (r *addressRepository) FindAll(ctx context.Context) ([]*user.Address, error) {
	var models []AddressModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询地址列表失败")
	}

	addresses := make([]*user.Address, len(models))
	for i := range models {
		addresses[i] = toAddressEntity(&models[i])
	}
	return addresses, nil
}

// FindByUserID 查询用户的所有地址
func (r *addressRepository) FindByUserID(ctx context.Context, userID uint) ([]*user.Address, error) {
	var models []AddressModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户地址失败")
	}

	addresses := make([]*user.Address, len(models))
	for i := range models {
		addresses[i] = toAddressEntity(&models[i])
	}
	return addresses, nil
}

// Update 更新地址
func (r *addressRepository) Update(ctx context.Context, a *user.Address) error {
	model := &AddressModel{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		CreatedAt:  a.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新地址失败")
	}

	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除地址
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AddressModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除地址失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrAddressNotFound
	}
	return nil
}

// toAddressEntity GORM模型 → 领域实体
func toAddressEntity(model *AddressModel) *user.Address {
	return &user.Address{
		ID:         model.ID,
		UserID:     model.UserID,
		Street:     model.Street,
		City:       model.City,
		State:      model.State,
		PostalCode: model.PostalCode,
		Country:    model.Country,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
