// Package category 图书分类聚合
package category

import (
	"context"
	"time"

	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// Category 分类实体
// 一对多拥有Book(Book持有CategoryID外键)
type Category struct {
	ID          uint
	Name        string // 分类名称
	Description string // 分类描述
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrCategoryNotFound 分类不存在
var ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}

// Service 分类领域服务
type Service interface {
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c := &Category{Name: name, Description: description}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	// 存在性预检查
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
