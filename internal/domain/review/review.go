// Package review 图书评价聚合
package review

import (
	"context"
	"time"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/user"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// Review 评价实体
// (user, book)组合唯一:同一用户对同一本书只有一条评价,
// 重复提交时更新原记录而非新增
type Review struct {
	ID         uint
	BookID     uint      // 图书ID
	UserID     uint      // 用户ID
	Rating     int       // 评分(1-5)
	Comment    string    // 评价内容
	ReviewDate time.Time // 评价日期
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrInvalidRating 评分不合法
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")
)

// Repository 评价仓储接口
type Repository interface {
	// Create 创建评价
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找评价
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByUserAndBook 根据(用户,图书)组合查找评价
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// FindByBookID 查询图书的所有评价
	FindByBookID(ctx context.Context, bookID uint) ([]*Review, error)

	// FindAll 查询所有评价
	FindAll(ctx context.Context) ([]*Review, error)

	// Update 更新评价
	Update(ctx context.Context, review *Review) error

	// Delete 删除评价
	Delete(ctx context.Context, id uint) error
}

// Service 评价领域服务
type Service interface {
	// AddOrUpdateReview 新增或更新评价
	// 业务规则:
	// - 用户和图书必须存在
	// - 评分1-5
	// - 同一(用户,图书)已有评价时原地更新,不产生新记录
	AddOrUpdateReview(ctx context.Context, userID, bookID uint, rating int, comment string) (*Review, error)

	// DeleteReview 删除用户对图书的评价
	DeleteReview(ctx context.Context, userID, bookID uint) error

	// GetReviewByID 根据ID获取评价
	GetReviewByID(ctx context.Context, id uint) (*Review, error)

	// ListReviewsByBook 查询图书的所有评价
	ListReviewsByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// ListReviews 查询所有评价
	ListReviews(ctx context.Context) ([]*Review, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
	bookRepo book.Repository
}

// NewService 创建评价领域服务
func NewService(repo Repository, userRepo user.Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, userRepo: userRepo, bookRepo: bookRepo}
}

// AddOrUpdateReview 新增或更新评价
func (s *service) AddOrUpdateReview(ctx context.Context, userID, bookID uint, rating int, comment string) (*Review, error) {
	// 1. 评分校验
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	// 2. 用户/图书存在性校验
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 3. 组合查找:已有评价则原地更新
	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		existing.ReviewDate = time.Now()
		existing.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != ErrReviewNotFound {
		return nil, err
	}

	// 4. 新建评价
	now := time.Now()
	r := &Review{
		BookID:     bookID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
		ReviewDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReview 删除用户对图书的评价
func (s *service) DeleteReview(ctx context.Context, userID, bookID uint) error {
	// 用户/图书存在性校验
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}

	r, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, r.ID)
}

func (s *service) GetReviewByID(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListReviewsByBook(ctx context.Context, bookID uint) ([]*Review, error) {
	return s.repo.FindByBookID(ctx, bookID)
}

func (s *service) ListReviews(ctx context.Context) ([]*Review, error) {
	return s.repo.FindAll(ctx)
}
