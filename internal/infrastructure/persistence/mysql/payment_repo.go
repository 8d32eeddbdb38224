package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/payment"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// paymentRepository 支付仓储实现(MySQL)
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓储
func NewPaymentRepository(db *gorm.DB) payment.Repository {
	return &paymentRepository{db: db}
}

// Create 创建支付记录
func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := &PaymentModel{
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Status:      string(p.Status),
		Amount:      p.Amount,
		ReferenceNo: p.ReferenceNo,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建支付记录失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找支付记录
func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model PaymentModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(err, "查询支付记录失败")
	}
	return toPaymentEntity(&model), nil
}

// FindAll 查询所有支付记录
func (r *paymentRepository) FindAll(ctx context.Context) ([]*payment.Payment, error) {
	var models []PaymentModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询支付记录列表失败")
	}

	payments := make([]*payment.Payment, len(models))
	for i := range models {
		payments[i] = toPaymentEntity(&models[i])
	}
	return payments, nil
}

// Update 更新支付记录
func (r *paymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model := &PaymentModel{
		ID:          p.ID,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Status:      string(p.Status),
		Amount:      p.Amount,
		ReferenceNo: p.ReferenceNo,
		CreatedAt:   p.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新支付记录失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除支付记录
func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PaymentModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除支付记录失败")
	}
	if result.RowsAffected == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

// toPaymentEntity GORM模型 → 领域实体
func toPaymentEntity(model *PaymentModel) *payment.Payment {
	return &payment.Payment{
		ID:          model.ID,
		PaymentDate: model.PaymentDate,
		Method:      model.Method,
		Status:      payment.Status(model.Status),
		Amount:      model.Amount,
		ReferenceNo: model.ReferenceNo,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
