package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/pkg/utils"
)

// SubmissionRepository implements form submission operations
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *entities.FormSubmission) error {
	m := &models.FormSubmission{
		ID:         submission.ID,
		ModuleName: string(submission.ModuleName),
		ModuleID:   submission.ModuleID,
		Code:       submission.Code,
		FormID:     submission.FormID,
		Answers:    submission.Answers,
		Email:      submission.Email,
		Phone:      submission.Phone,
		CreatedAt:  submission.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// List returns submissions matching every non-zero filter field, newest first
func (r *SubmissionRepository) List(ctx context.Context, filter entities.SubmissionFilter, p utils.PaginationParams) (*entities.ListResult[*entities.FormSubmission], error) {
	query := GetDB(ctx, r.db).Model(&models.FormSubmission{})
	if filter.FormID != uuid.Nil {
		query = query.Where("form_id = ?", filter.FormID)
	}
	if filter.ModuleName != "" {
		query = query.Where("module_name = ?", string(filter.ModuleName))
	}
	if filter.ModuleID != uuid.Nil {
		query = query.Where("module_id = ?", filter.ModuleID)
	}

	rows, total, err := listPage[models.FormSubmission](query, "created_at DESC", p)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.FormSubmission, 0, len(rows))
	for i := range rows {
		items = append(items, toSubmissionEntity(&rows[i]))
	}
	return &entities.ListResult[*entities.FormSubmission]{Items: items, Total: total}, nil
}

func toSubmissionEntity(m *models.FormSubmission) *entities.FormSubmission {
	answers := m.Answers
	if answers == nil {
		answers = []entities.Answer{}
	}
	return &entities.FormSubmission{
		ID:         m.ID,
		ModuleName: entities.OwnerType(m.ModuleName),
		ModuleID:   m.ModuleID,
		Code:       m.Code,
		FormID:     m.FormID,
		Answers:    answers,
		Email:      m.Email,
		Phone:      m.Phone,
		CreatedAt:  m.CreatedAt,
	}
}
