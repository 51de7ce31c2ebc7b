package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/pkg/utils"
)

// FormRepository implements form data operations
type FormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) Create(ctx context.Context, form *entities.Form) error {
	return translateError(GetDB(ctx, r.db).Create(toFormModel(form)).Error)
}

func (r *FormRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Form, error) {
	var m models.Form
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toFormEntity(&m), nil
}

func (r *FormRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Form, error) {
	out := make(map[uuid.UUID]*entities.Form, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Form
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = toFormEntity(&rows[i])
	}
	return out, nil
}

func (r *FormRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Form], error) {
	query := GetDB(ctx, r.db).Model(&models.Form{}).Where("user_id = ?", userID)
	rows, total, err := listPage[models.Form](query, "created_at DESC", p)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Form, 0, len(rows))
	for i := range rows {
		items = append(items, toFormEntity(&rows[i]))
	}
	return &entities.ListResult[*entities.Form]{Items: items, Total: total}, nil
}

func (r *FormRepository) Update(ctx context.Context, form *entities.Form) error {
	m := toFormModel(form)
	m.UpdatedAt = time.Now()
	return affected(GetDB(ctx, r.db).Model(m).Select("name", "questions", "updated_at").Updates(m))
}

func (r *FormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Delete(&models.Form{}, "id = ?", id))
}

func toFormModel(f *entities.Form) *models.Form {
	return &models.Form{
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Questions: f.Questions,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toFormEntity(m *models.Form) *entities.Form {
	questions := m.Questions
	if questions == nil {
		questions = []entities.Question{}
	}
	return &entities.Form{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Questions: questions,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
