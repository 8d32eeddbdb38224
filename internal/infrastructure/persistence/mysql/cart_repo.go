package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/cart"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 查询时Preload条目,避免N+1问题
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &CartModel{UserID: c.UserID}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找购物车(包含条目)
func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.ShoppingCart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// FindByUserID 根据用户ID查找购物车(包含条目)
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Update 更新购物车
func (r *cartRepository) Update(ctx context.Context, c *cart.ShoppingCart) error {
	model := &CartModel{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}

	// 条目由ItemRepository单独维护,这里只保存购物车本身
	if err := getDB(ctx, r.db).Omit("Items").Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) *cart.ShoppingCart {
	items := make([]cart.CartItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = cart.CartItem{
			ID:        item.ID,
			CartID:    item.CartID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return &cart.ShoppingCart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// cartItemRepository 购物车条目仓储实现(MySQL)
type cartItemRepository struct {
	db *gorm.DB
}

// NewCartItemRepository 创建购物车条目仓储
func NewCartItemRepository(db *gorm.DB) cart.ItemRepository {
	return &cartItemRepository{db: db}
}

// Create 创建条目
func (r *cartItemRepository) Create(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		CartID:   item.CartID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.Wrap(err, "创建购物车条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找条目
func (r *cartItemRepository) FindByID(ctx context.Context, id uint) (*cart.CartItem, error) {
	var model CartItemModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartItemEntity(&model), nil
}

// FindByCartAndBook 根据(购物车,图书)组合查找条目
func (r *cartItemRepository) FindByCartAndBook(ctx context.Context, cartID, bookID uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartItemEntity(&model), nil
}

// FindAll 查询所有条目
func (r *cartItemRepository) FindAll(ctx context.Context) ([]*cart.CartItem, error) {
	var models []CartItemModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车条目列表失败")
	}

	items := make([]*cart.CartItem, len(models))
	for i := range models {
		items[i] = toCartItemEntity(&models[i])
	}
	return items, nil
}

// Update 更新条目
func (r *cartItemRepository) Update(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		ID:        item.ID,
		CartID:    item.CartID,
		BookID:    item.BookID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车条目失败")
	}

	item.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除条目
func (r *cartItemRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.CartItem {
	return &cart.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
