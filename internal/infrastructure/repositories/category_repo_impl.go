package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
)

// CategoryRepository implements category data operations
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category together with its subcategories
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	m := &models.Category{ID: category.ID, Name: category.Name}
	for i, sub := range category.Subcategories {
		m.Subcategories = append(m.Subcategories, models.Subcategory{
			ID:         sub.ID,
			CategoryID: category.ID,
			Name:       sub.Name,
			Position:   i,
		})
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var m models.Category
	err := GetDB(ctx, r.db).Preload("Subcategories", orderByPosition).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toCategoryEntity(&m), nil
}

func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Category, error) {
	out := make(map[uuid.UUID]*entities.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Category
	if err := GetDB(ctx, r.db).Preload("Subcategories", orderByPosition).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = toCategoryEntity(&rows[i])
	}
	return out, nil
}

// List returns every category ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	var rows []models.Category
	if err := GetDB(ctx, r.db).Preload("Subcategories", orderByPosition).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Category, 0, len(rows))
	for i := range rows {
		out = append(out, toCategoryEntity(&rows[i]))
	}
	return out, nil
}

// Delete removes a category and its subcategories
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
		return err
	}
	return affected(db.Delete(&models.Category{}, "id = ?", id))
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func toCategoryEntity(m *models.Category) *entities.Category {
	c := &entities.Category{ID: m.ID, Name: m.Name, Subcategories: []entities.Subcategory{}}
	for _, s := range m.Subcategories {
		c.Subcategories = append(c.Subcategories, entities.Subcategory{
			ID:         s.ID,
			CategoryID: s.CategoryID,
			Name:       s.Name,
			Position:   s.Position,
		})
	}
	return c
}
