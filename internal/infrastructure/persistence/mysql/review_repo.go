package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/review"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// reviewRepository 评价仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评价
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		ReviewDate: rv.ReviewDate,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.Wrap(err, "创建评价失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找评价
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// FindByUserAndBook 根据(用户,图书)组合查找评价
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// FindByBookID 查询图书的所有评价
func (r *reviewRepository) FindByBookID(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书评价失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

// FindAll 查询所有评价
func (r *reviewRepository) FindAll(ctx context.Context) ([]*review.Review, error) {
	var models []ReviewModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

// Update 更新评价
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		ID:         rv.ID,
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		ReviewDate: rv.ReviewDate,
		CreatedAt:  rv.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新评价失败")
	}

	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除评价
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		Rating:     model.Rating,
		Comment:    model.Comment,
		ReviewDate: model.ReviewDate,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
