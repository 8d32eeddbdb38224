package book

import (
	"context"
	"regexp"

	"github.com/kovan/bookshop/internal/domain/category"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(ISBN格式、价格范围、分类存在性)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)且不能重复
	// - 价格必须>0
	// - 库存必须>=0
	// - 所属分类必须存在
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// ListBooks 查询所有图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// UpdateBook 全量更新图书信息
	UpdateBook(ctx context.Context, id uint, patch *Book) (*Book, error)

	// DeleteBook 删除图书(存在性预检查)
	DeleteBook(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo         Repository
	categoryRepo category.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(b.ISBN) {
		return nil, ErrInvalidISBN
	}

	// 2. 价格/库存校验
	if b.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if b.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 3. 分类存在性校验
	if _, err := s.categoryRepo.FindByID(ctx, b.CategoryID); err != nil {
		return nil, err
	}

	// 4. 检查ISBN是否已存在
	existing, err := s.repo.FindByISBN(ctx, b.ISBN)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 5. 持久化(数据库唯一索引兜底)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// ListBooks 查询所有图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// UpdateBook 全量更新图书信息
// 全字段覆盖语义:patch中的所有字段直接覆盖现有记录
func (s *service) UpdateBook(ctx context.Context, id uint, patch *Book) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 参数校验
	if !isValidISBN(patch.ISBN) {
		return nil, ErrInvalidISBN
	}
	if patch.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if patch.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 3. 分类存在性校验
	if _, err := s.categoryRepo.FindByID(ctx, patch.CategoryID); err != nil {
		return nil, err
	}

	// 4. 覆盖字段
	b.Title = patch.Title
	b.Author = patch.Author
	b.Genre = patch.Genre
	b.Price = patch.Price
	b.ISBN = patch.ISBN
	b.PublicationYear = patch.PublicationYear
	b.Publisher = patch.Publisher
	b.Stock = patch.Stock
	b.Description = patch.Description
	b.CoverImage = patch.CoverImage
	b.CategoryID = patch.CategoryID

	// 5. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 存在性预检查
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// isValidISBN 校验ISBN格式
// 支持ISBN-10和ISBN-13,允许分隔符(978-7-115-42802-8)
// 简化实现:只检查位数和是否全为数字(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	clean := re.ReplaceAllString(isbn, "")

	length := len(clean)
	return length == 10 || length == 13
}
