package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/pkg/utils"
)

// AttachmentRepository implements form attachment operations
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) CreateBatch(ctx context.Context, attachments []*entities.FormAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	rows := make([]models.FormAttachment, 0, len(attachments))
	for _, a := range attachments {
		rows = append(rows, models.FormAttachment{
			ID:        a.ID,
			OwnerType: string(a.OwnerType),
			OwnerID:   a.OwnerID,
			FormID:    a.FormID,
			Code:      a.Code,
			IsActive:  a.IsActive,
			Position:  a.Position,
			CreatedAt: a.CreatedAt,
		})
	}
	return translateError(GetDB(ctx, r.db).Create(&rows).Error)
}

func (r *AttachmentRepository) ListByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID) ([]entities.FormAttachment, error) {
	grouped, err := r.ListByOwners(ctx, ownerType, []uuid.UUID{ownerID})
	if err != nil {
		return nil, err
	}
	if items, ok := grouped[ownerID]; ok {
		return items, nil
	}
	return []entities.FormAttachment{}, nil
}

// ListByOwners returns attachments grouped by owner in attach order
func (r *AttachmentRepository) ListByOwners(ctx context.Context, ownerType entities.OwnerType, ownerIDs []uuid.UUID) (map[uuid.UUID][]entities.FormAttachment, error) {
	out := make(map[uuid.UUID][]entities.FormAttachment, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var rows []models.FormAttachment
	err := GetDB(ctx, r.db).
		Where("owner_type = ? AND owner_id IN ?", string(ownerType), ownerIDs).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].OwnerID] = append(out[rows[i].OwnerID], toAttachmentEntity(&rows[i]))
	}
	return out, nil
}

// ListFormsByOwner pages the live forms attached to one owner
func (r *AttachmentRepository) ListFormsByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[entities.AttachedForm], error) {
	db := GetDB(ctx, r.db)
	query := db.Model(&models.FormAttachment{}).
		Joins("JOIN forms ON forms.id = form_attachments.form_id AND forms.deleted_at IS NULL").
		Where("form_attachments.owner_type = ? AND form_attachments.owner_id = ?", string(ownerType), ownerID)
	rows, total, err := listPage[models.FormAttachment](query, "form_attachments.position ASC", p)
	if err != nil {
		return nil, err
	}

	formIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		formIDs = append(formIDs, row.FormID)
	}
	var forms []models.Form
	if len(formIDs) > 0 {
		if err := db.Where("id IN ?", formIDs).Find(&forms).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uuid.UUID]*models.Form, len(forms))
	for i := range forms {
		byID[forms[i].ID] = &forms[i]
	}

	items := make([]entities.AttachedForm, 0, len(rows))
	for _, row := range rows {
		f, ok := byID[row.FormID]
		if !ok {
			continue
		}
		items = append(items, entities.AttachedForm{Form: toFormEntity(f), IsActive: row.IsActive, Code: row.Code})
	}
	return &entities.ListResult[entities.AttachedForm]{Items: items, Total: total}, nil
}

func (r *AttachmentRepository) GetByCode(ctx context.Context, code string) (*entities.FormAttachment, error) {
	var m models.FormAttachment
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	a := toAttachmentEntity(&m)
	return &a, nil
}

func (r *AttachmentRepository) Activate(ctx context.Context, ownerType entities.OwnerType, ownerID, formID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	owner := db.Model(&models.FormAttachment{}).Where("owner_type = ? AND owner_id = ?", string(ownerType), ownerID)

	var count int64
	if err := owner.Session(&gorm.Session{}).Where("form_id = ?", formID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}

	return owner.Session(&gorm.Session{}).
		Update("is_active", gorm.Expr("CASE WHEN form_id = ? THEN ? ELSE ? END", formID, true, false)).Error
}

func toAttachmentEntity(m *models.FormAttachment) entities.FormAttachment {
	return entities.FormAttachment{
		ID:        m.ID,
		OwnerType: entities.OwnerType(m.OwnerType),
		OwnerID:   m.OwnerID,
		FormID:    m.FormID,
		Code:      m.Code,
		IsActive:  m.IsActive,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}
