package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/utils"
)

// CategoryUsecase manages the business category catalog
type CategoryUsecase struct {
	categoryRepo repositories.CategoryRepository
	uow          repositories.UnitOfWork
}

// NewCategoryUsecase creates a new category usecase
func NewCategoryUsecase(categoryRepo repositories.CategoryRepository, uow repositories.UnitOfWork) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, uow: uow}
}

// CreateCategories inserts every category of the request in one transaction
func (u *CategoryUsecase) CreateCategories(ctx context.Context, input *entities.CreateCategoriesInput) ([]*entities.Category, error) {
	created := make([]*entities.Category, 0, len(input.Categories))
	for _, in := range input.Categories {
		category := &entities.Category{
			ID:            utils.GenerateUUIDv7(),
			Name:          in.Name,
			Subcategories: make([]entities.Subcategory, 0, len(in.Subcategories)),
		}
		for i, sub := range in.Subcategories {
			category.Subcategories = append(category.Subcategories, entities.Subcategory{
				ID:         utils.GenerateUUIDv7(),
				CategoryID: category.ID,
				Name:       sub.Name,
				Position:   i,
			})
		}
		created = append(created, category)
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, category := range created {
			if err := u.categoryRepo.Create(txCtx, category); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("category already exists")
		}
		return nil, err
	}
	return created, nil
}

// List returns every category with its subcategories
func (u *CategoryUsecase) List(ctx context.Context) ([]*entities.Category, error) {
	return u.categoryRepo.List(ctx)
}

// Get returns one category
func (u *CategoryUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No Data Find by this Id")
		}
		return nil, err
	}
	return category, nil
}

// Subcategories returns the ordered subcategories of a category
func (u *CategoryUsecase) Subcategories(ctx context.Context, id uuid.UUID) ([]entities.Subcategory, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Category not found")
		}
		return nil, err
	}
	return category.Subcategories, nil
}

// Delete removes a category and its subcategories
func (u *CategoryUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.categoryRepo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No Data Find by this Id")
		}
		return err
	}
	return nil
}
