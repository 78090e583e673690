package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
	"github.com/finance-ledger/api/internal/testutil"
)

func requireCategoryCode(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	assert.Equal(t, code, catErr.Code)
}

func TestCreateCategory(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewCreateCategoryUseCase(tdb.Categories)
	ctx := context.Background()

	output, err := uc.Execute(ctx, CreateCategoryInput{
		Name:        "Travel",
		Description: testutil.Ptr("Trips"),
		IsIncome:    false,
	})
	require.NoError(t, err)
	assert.NotZero(t, output.Category.ID)
	assert.Equal(t, "Travel", output.Category.Name)
	assert.Equal(t, "Trips", *output.Category.Description)
	assert.False(t, output.Category.IsDefault)
}

func TestCreateCategory_NameIsGloballyUnique(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewCreateCategoryUseCase(tdb.Categories)
	ctx := context.Background()

	tdb.CreateCategory("Bonus", true, false)

	// Same name with the opposite income flag still collides
	_, err := uc.Execute(ctx, CreateCategoryInput{Name: "Bonus", IsIncome: false})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
	assert.Contains(t, err.Error(), "Category with name 'Bonus' already exists")
}

func TestCreateCategory_Validation(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewCreateCategoryUseCase(tdb.Categories)

	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{"empty name", CreateCategoryInput{Name: ""}, domainerror.ErrCodeInvalidCategoryName},
		{"blank name", CreateCategoryInput{Name: "   "}, domainerror.ErrCodeInvalidCategoryName},
		{"long name", CreateCategoryInput{Name: strings.Repeat("a", 101)}, domainerror.ErrCodeInvalidCategoryName},
		{
			"long description",
			CreateCategoryInput{Name: "Ok", Description: testutil.Ptr(strings.Repeat("d", 501))},
			domainerror.ErrCodeCategoryDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			requireCategoryCode(t, err, tt.code)
		})
	}
}

func TestGetCategory(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewGetCategoryUseCase(tdb.Categories)
	ctx := context.Background()

	food := tdb.CreateCategory("Food", false, true)

	byID, err := uc.Execute(ctx, GetCategoryInput{Ref: entity.CategoryByID(food.ID)})
	require.NoError(t, err)
	assert.Equal(t, "Food", byID.Category.Name)
	assert.True(t, byID.Category.IsDefault)

	byName, err := uc.Execute(ctx, GetCategoryInput{Ref: entity.CategoryByName("Food")})
	require.NoError(t, err)
	assert.Equal(t, food.ID, byName.Category.ID)

	_, err = uc.Execute(ctx, GetCategoryInput{Ref: entity.CategoryByID(9999)})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	_, err = uc.Execute(ctx, GetCategoryInput{Ref: entity.CategoryByName("Nope")})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestListCategories_Pagination(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewListCategoriesUseCase(tdb.Categories)
	ctx := context.Background()

	for _, name := range []string{"E", "C", "A", "D", "B"} {
		tdb.CreateCategory(name, false, false)
	}

	full, err := uc.Execute(ctx, ListCategoriesInput{})
	require.NoError(t, err)
	require.Len(t, full.Categories, 5)

	page, err := uc.Execute(ctx, ListCategoriesInput{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Categories, 2)
	assert.Equal(t, full.Categories[1].ID, page.Categories[0].ID)
	assert.Equal(t, full.Categories[2].ID, page.Categories[1].ID)
	assert.Equal(t, "B", page.Categories[0].Name)
}

func TestUpdateCategory(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewUpdateCategoryUseCase(tdb.Categories)
	ctx := context.Background()

	food := tdb.CreateCategory("Food", false, false)
	tdb.CreateCategory("Rent", false, false)

	// Same name as itself is not a collision
	output, err := uc.Execute(ctx, UpdateCategoryInput{
		CategoryID: food.ID,
		Patch:      entity.CategoryPatch{Name: testutil.Ptr("Food"), Description: entity.SetString("Meals")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Meals", *output.Category.Description)
	assert.False(t, output.Category.IsIncome)

	_, err = uc.Execute(ctx, UpdateCategoryInput{
		CategoryID: food.ID,
		Patch:      entity.CategoryPatch{Name: testutil.Ptr("Rent")},
	})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)

	_, err = uc.Execute(ctx, UpdateCategoryInput{
		CategoryID: 4242,
		Patch:      entity.CategoryPatch{IsIncome: testutil.Ptr(true)},
	})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	// Absent fields stay untouched
	output, err = uc.Execute(ctx, UpdateCategoryInput{
		CategoryID: food.ID,
		Patch:      entity.CategoryPatch{IsIncome: testutil.Ptr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Food", output.Category.Name)
	assert.Equal(t, "Meals", *output.Category.Description)
	assert.True(t, output.Category.IsIncome)

	// An explicit null clears the description
	output, err = uc.Execute(ctx, UpdateCategoryInput{
		CategoryID: food.ID,
		Patch:      entity.CategoryPatch{Description: entity.ClearString()},
	})
	require.NoError(t, err)
	assert.Nil(t, output.Category.Description)

	stored, err := tdb.Categories.FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Description)
	assert.True(t, stored.IsIncome)
}

func TestDeleteCategory_Guards(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewDeleteCategoryUseCase(tdb.Categories, tdb.Transactions, tdb.UnitOfWork)
	ctx := context.Background()

	food := tdb.CreateCategory("Food", false, true)
	txn := tdb.CreateTransaction(100.5, food.ID, false, "2024-01-15")

	_, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: food.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryHasTransactions)

	require.NoError(t, tdb.Transactions.Delete(ctx, txn.ID))

	_, err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: food.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryIsDefault)

	plain := tdb.CreateCategory("Hobbies", false, false)
	output, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: plain.ID})
	require.NoError(t, err)
	assert.True(t, output.Success)

	_, err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: plain.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestDeleteCategory_ReferencedNonDefault(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewDeleteCategoryUseCase(tdb.Categories, tdb.Transactions, tdb.UnitOfWork)

	custom := tdb.CreateCategory("Custom", true, false)
	tdb.CreateTransaction(1, custom.ID, true, "2024-03-01")

	_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: custom.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryHasTransactions)
}

func TestSeedDefaultCategories_Idempotent(t *testing.T) {
	tdb := testutil.SetupTestDB(t)
	uc := NewSeedDefaultCategoriesUseCase(tdb.Categories)
	ctx := context.Background()

	// A user category that happens to share a default name is kept as is
	tdb.CreateCategory("Food", false, false)

	first, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(entity.DefaultCategories())-1, first.Created)
	assert.Equal(t, 1, first.Skipped)

	second, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, len(entity.DefaultCategories()), second.Skipped)

	salary, err := tdb.Categories.FindByName(ctx, "Salary")
	require.NoError(t, err)
	assert.True(t, salary.IsDefault)
	assert.True(t, salary.IsIncome)

	food, err := tdb.Categories.FindByName(ctx, "Food")
	require.NoError(t, err)
	assert.False(t, food.IsDefault)
}
