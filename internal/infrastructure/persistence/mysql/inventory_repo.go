package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kovan/bookshop/internal/domain/inventory"
	apperrors "github.com/kovan/bookshop/pkg/errors"
)

// inventoryRepository 库存流水仓储实现(MySQL)
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存流水仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// Create 创建流水记录
func (r *inventoryRepository) Create(ctx context.Context, t *inventory.Transaction) error {
	model := &InventoryTransactionModel{
		BookID:          t.BookID,
		Type:            string(t.Type),
		Quantity:        t.Quantity,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建库存流水失败")
	}

	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找流水
func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Transaction, error) {
	var model InventoryTransactionModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存流水失败")
	}
	return toTransactionEntity(&model), nil
}

// FindAll 查询所有流水
func (r *inventoryRepository) FindAll(ctx context.Context) ([]*inventory.Transaction, error) {
	var models []InventoryTransactionModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询库存流水列表失败")
	}
	return toTransactionEntities(models), nil
}

// FindByBookID 查询图书的所有流水
func (r *inventoryRepository) FindByBookID(ctx context.Context, bookID uint) ([]*inventory.Transaction, error) {
	var models []InventoryTransactionModel
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书库存流水失败")
	}
	return toTransactionEntities(models), nil
}

// Update 更新流水记录
func (r *inventoryRepository) Update(ctx context.Context, t *inventory.Transaction) error {
	model := &InventoryTransactionModel{
		ID:              t.ID,
		BookID:          t.BookID,
		Type:            string(t.Type),
		Quantity:        t.Quantity,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新库存流水失败")
	}

	t.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除流水记录
func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&InventoryTransactionModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除库存流水失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrTransactionNotFound
	}
	return nil
}

// toTransactionEntity GORM模型 → 领域实体
func toTransactionEntity(model *InventoryTransactionModel) *inventory.Transaction {
	return &inventory.Transaction{
		ID:              model.ID,
		BookID:          model.BookID,
		Type:            inventory.TransactionType(model.Type),
		Quantity:        model.Quantity,
		TransactionDate: model.TransactionDate,
		Notes:           model.Notes,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toTransactionEntities(models []InventoryTransactionModel) []*inventory.Transaction {
	txs := make([]*inventory.Transaction, len(models))
	for i := range models {
		txs[i] = toTransactionEntity(&models[i])
	}
	return txs
}
