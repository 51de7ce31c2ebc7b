package repositories

import (
	"context"

	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/pkg/utils"
)

// FormRepository defines form data operations. Deleted forms are invisible.
type FormRepository interface {
	Create(ctx context.Context, form *entities.Form) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Form, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Form, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Form], error)
	Update(ctx context.Context, form *entities.Form) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// AttachmentRepository defines form attachment operations
type AttachmentRepository interface {
	// CreateBatch inserts attachments; a duplicate code or owner/form pair
	// fails with ErrAlreadyExists
	CreateBatch(ctx context.Context, attachments []*entities.FormAttachment) error
	ListByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID) ([]entities.FormAttachment, error)
	ListByOwners(ctx context.Context, ownerType entities.OwnerType, ownerIDs []uuid.UUID) (map[uuid.UUID][]entities.FormAttachment, error)
	ListFormsByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[entities.AttachedForm], error)
	GetByCode(ctx context.Context, code string) (*entities.FormAttachment, error)
	// Activate marks formID active and every other attachment of the owner
	// inactive in one statement
	Activate(ctx context.Context, ownerType entities.OwnerType, ownerID, formID uuid.UUID) error
}

// SubmissionRepository defines form submission operations
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entities.FormSubmission) error
	List(ctx context.Context, filter entities.SubmissionFilter, p utils.PaginationParams) (*entities.ListResult[*entities.FormSubmission], error)
}
