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

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
// The insert runs in its own savepoint so a name collision leaves an
// enclosing transaction usable.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(categoryModel).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return domainerror.ErrCategoryNameExists
		}
		return err
	}

	category.ID = categoryModel.ID
	category.CreatedAt = categoryModel.CreatedAt
	category.UpdatedAt = categoryModel.UpdatedAt
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByName retrieves a category by its exact name.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("name = ?", name).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// ExistsByName checks if a category other than excludeID uses the name.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&model.CategoryModel{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves categories ordered by name, then ID.
func (r *categoryRepository) List(ctx context.Context, filter adapter.CategoryFilter, pagination adapter.Pagination) ([]*entity.Category, error) {
	query := conn(ctx, r.db).Model(&model.CategoryModel{})

	if filter.IsIncome != nil {
		query = query.Where("is_income = ?", *filter.IsIncome)
	}
	if filter.IsDefault != nil {
		query = query.Where("is_default = ?", *filter.IsDefault)
	}

	var categoryModels []model.CategoryModel
	result := query.
		Order("name ASC").
		Order("id ASC").
		Offset(pagination.Skip).
		Limit(pagination.Limit).
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Save(categoryModel).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return domainerror.ErrCategoryNameExists
		}
		return err
	}
	category.UpdatedAt = categoryModel.UpdatedAt
	return nil
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	var rowsAffected int64
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.CategoryModel{}, "id = ?", id)
		rowsAffected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domainerror.ErrCategoryHasTransactions
		}
		return err
	}
	if rowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}
