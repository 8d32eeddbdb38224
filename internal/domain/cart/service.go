package cart

import (
	"context"
	"time"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/user"
)

// Service 购物车领域服务
// 设计说明:
// 1. 购物车按用户惰性创建(get-or-create)
// 2. 加购使用(cart, book)组合查找:同一本书重复加购累加数量,
//    不会产生重复条目
type Service interface {
	// GetOrCreateCart 获取用户购物车,不存在则创建
	GetOrCreateCart(ctx context.Context, userID uint) (*ShoppingCart, error)

	// AddToCart 向用户购物车加入图书
	AddToCart(ctx context.Context, userID, bookID uint, quantity int) (*CartItem, error)

	// RemoveFromCart 从用户购物车移除条目
	// 业务规则:条目必须属于该用户的购物车
	RemoveFromCart(ctx context.Context, userID, itemID uint) error

	// ViewCart 查看用户购物车(包含条目)
	ViewCart(ctx context.Context, userID uint) (*ShoppingCart, error)

	// UpdateCartItem 修改条目数量
	UpdateCartItem(ctx context.Context, itemID uint, quantity int) (*CartItem, error)

	// DeleteCartItem 直接删除条目(不校验归属,管理接口)
	DeleteCartItem(ctx context.Context, itemID uint) error

	// ListCartItems 查询所有条目(管理接口)
	ListCartItems(ctx context.Context) ([]*CartItem, error)
}

type service struct {
	repo     Repository
	itemRepo ItemRepository
	userRepo user.Repository
	bookRepo book.Repository
}

// NewService 创建购物车领域服务
func NewService(repo Repository, itemRepo ItemRepository, userRepo user.Repository, bookRepo book.Repository) Service {
	return &service{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		bookRepo: bookRepo,
	}
}

// GetOrCreateCart 获取用户购物车,不存在则创建
func (s *service) GetOrCreateCart(ctx context.Context, userID uint) (*ShoppingCart, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if err != ErrCartNotFound {
		return nil, err
	}

	// 购物车不存在:校验用户后创建
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	c = &ShoppingCart{UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddToCart 向用户购物车加入图书
func (s *service) AddToCart(ctx context.Context, userID, bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 同一本书已在购物车中:累加数量
	existing, err := s.itemRepo.FindByCartAndBook(ctx, c.ID, bookID)
	if err == nil {
		existing.Quantity += quantity
		existing.UpdatedAt = time.Now()
		if err := s.itemRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != ErrCartItemNotFound {
		return nil, err
	}

	// 新条目:校验图书存在
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &CartItem{
		CartID:    c.ID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromCart 从用户购物车移除条目
func (s *service) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	c, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	// 归属校验:防止移除他人购物车的条目
	if !c.Owns(item) {
		return ErrItemNotInCart
	}

	return s.itemRepo.Delete(ctx, itemID)
}

// ViewCart 查看用户购物车
func (s *service) ViewCart(ctx context.Context, userID uint) (*ShoppingCart, error) {
	return s.GetOrCreateCart(ctx, userID)
}

// UpdateCartItem 修改条目数量
func (s *service) UpdateCartItem(ctx context.Context, itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteCartItem 直接删除条目
func (s *service) DeleteCartItem(ctx context.Context, itemID uint) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// ListCartItems 查询所有条目
func (s *service) ListCartItems(ctx context.Context) ([]*CartItem, error) {
	return s.itemRepo.FindAll(ctx)
}
