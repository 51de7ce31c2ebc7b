package usecases_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/usecases"
)

func TestCategoryUsecase_CreateCategories(t *testing.T) {
	ctx := context.Background()
	input := &entities.CreateCategoriesInput{Categories: []entities.CategoryInput{
		{Name: "Food", Subcategories: []entities.SubcategoryInput{{Name: "Cafe"}, {Name: "Bakery"}}},
		{Name: "Retail"},
	}}

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uow := new(MockUnitOfWork)
		uc := usecases.NewCategoryUsecase(repo, uow)

		uow.On("Do", ctx, mock.Anything).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*entities.Category")).Return(nil).Twice()

		created, err := uc.CreateCategories(ctx, input)
		require.NoError(t, err)
		require.Len(t, created, 2)
		require.Len(t, created[0].Subcategories, 2)
		assert.Equal(t, created[0].ID, created[0].Subcategories[1].CategoryID)
		assert.Equal(t, 1, created[0].Subcategories[1].Position)
		assert.Empty(t, created[1].Subcategories)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uow := new(MockUnitOfWork)
		uc := usecases.NewCategoryUsecase(repo, uow)

		uow.On("Do", ctx, mock.Anything).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()

		_, err := uc.CreateCategories(ctx, input)
		assertAppError(t, err, http.StatusConflict, "category already exists")
	})
}

func TestCategoryUsecase_Lookups(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := usecases.NewCategoryUsecase(repo, new(MockUnitOfWork))
	ctx := context.Background()

	category := &entities.Category{ID: uuid.New(), Subcategories: []entities.Subcategory{{Name: "Cafe"}}}
	missing := uuid.New()
	repo.On("GetByID", ctx, category.ID).Return(category, nil)
	repo.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound)

	got, err := uc.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category, got)

	subs, err := uc.Subcategories(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe", subs[0].Name)

	_, err = uc.Get(ctx, missing)
	assertAppError(t, err, http.StatusNotFound, "No Data Find by this Id")
	_, err = uc.Subcategories(ctx, missing)
	assertAppError(t, err, http.StatusNotFound, "Category not found")
}

func TestCategoryUsecase_Delete(t *testing.T) {
	repo := new(MockCategoryRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewCategoryUsecase(repo, uow)
	ctx := context.Background()
	id := uuid.New()

	uow.On("Do", ctx, mock.Anything)
	repo.On("Delete", ctx, id).Return(domainerrors.ErrNotFound).Once()
	assertAppError(t, uc.Delete(ctx, id), http.StatusNotFound, "No Data Find by this Id")

	repo.On("Delete", ctx, id).Return(nil).Once()
	assert.NoError(t, uc.Delete(ctx, id))
}
