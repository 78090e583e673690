package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
	"github.com/finance-ledger/api/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Create(transactionModel)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerror.ErrCategoryNotFoundForTransaction
		}
		return result.Error
	}

	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithCategory retrieves a transaction with its category by ID.
func (r *transactionRepository) FindByIDWithCategory(ctx context.Context, id uint) (*entity.TransactionWithCategory, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntityWithCategory(), nil
}

// List retrieves a page of transactions matching the filter, newest first.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) ([]*entity.TransactionWithCategory, error) {
	query := r.filtered(ctx, filter).
		Offset(pagination.Skip).
		Limit(pagination.Limit)
	return r.find(query)
}

// FindAll retrieves every transaction matching the filter, newest first.
func (r *transactionRepository) FindAll(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	return r.find(r.filtered(ctx, filter))
}

// CountByCategory returns the number of transactions referencing the category.
func (r *transactionRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Save(transactionModel)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerror.ErrCategoryNotFoundForTransaction
		}
		return result.Error
	}
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// filtered builds the shared filter and ordering of list queries.
// Dates are stored as YYYY-MM-DD, so string comparison is chronological.
func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&model.TransactionModel{})

	if filter.IsIncome != nil {
		query = query.Where("is_income = ?", *filter.IsIncome)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	return query.Order("id DESC")
}

func (r *transactionRepository) find(query *gorm.DB) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := query.Preload("Category").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithCategory()
	}
	return transactions, nil
}
