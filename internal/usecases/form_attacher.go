package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/utils"
)

// CodeGenerator issues public attachment codes
type CodeGenerator interface {
	GenerateBatch(n int) []string
}

// formAttacher holds the attachment rules shared by businesses and locations
type formAttacher struct {
	formRepo       repositories.FormRepository
	attachmentRepo repositories.AttachmentRepository
	uow            repositories.UnitOfWork
	codes          CodeGenerator
}

// attach links new forms to an owner. Forms already attached, and repeats
// within the request, are skipped. The first form ever attached is active.
func (a *formAttacher) attach(ctx context.Context, userID uuid.UUID, ownerType entities.OwnerType, ownerID uuid.UUID, rawIDs []string) ([]entities.FormAttachment, error) {
	formIDs, ok := utils.ParseUUIDs(rawIDs)
	if !ok || len(formIDs) == 0 {
		return nil, domainerrors.Validation("formIds: must be a non-empty array of ids")
	}
	formIDs = dedupeIDs(formIDs)

	forms, err := a.formRepo.GetByIDs(ctx, formIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range formIDs {
		form, ok := forms[id]
		if !ok || form.UserID != userID {
			return nil, domainerrors.NotFound("Form not found")
		}
	}

	existing, err := a.attachmentRepo.ListByOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	attached := make(map[uuid.UUID]struct{}, len(existing))
	for _, att := range existing {
		attached[att.FormID] = struct{}{}
	}

	var fresh []uuid.UUID
	for _, id := range formIDs {
		if _, ok := attached[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return existing, nil
	}

	codes := a.codes.GenerateBatch(len(fresh))
	now := timeNow()
	batch := make([]*entities.FormAttachment, 0, len(fresh))
	for i, id := range fresh {
		batch = append(batch, &entities.FormAttachment{
			ID:        utils.GenerateUUIDv7(),
			OwnerType: ownerType,
			OwnerID:   ownerID,
			FormID:    id,
			Code:      codes[i],
			IsActive:  i == 0 && len(existing) == 0,
			Position:  len(existing) + i,
			CreatedAt: now,
		})
	}

	err = a.uow.Do(ctx, func(txCtx context.Context) error {
		return a.attachmentRepo.CreateBatch(txCtx, batch)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			logger.Warn(ctx, "Attachment code collision",
				zap.String("owner_type", string(ownerType)),
				zap.String("owner_id", ownerID.String()),
			)
			return nil, domainerrors.Conflict("Form code already exists, please try again")
		}
		return nil, err
	}

	return a.attachmentRepo.ListByOwner(ctx, ownerType, ownerID)
}

// activate makes formID the only active attachment of the owner
func (a *formAttacher) activate(ctx context.Context, userID uuid.UUID, ownerType entities.OwnerType, ownerID, formID uuid.UUID) ([]entities.FormAttachment, error) {
	form, err := a.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Form not found")
		}
		return nil, err
	}
	if form.UserID != userID {
		return nil, domainerrors.NotFound("Form not found")
	}

	err = a.uow.Do(ctx, func(txCtx context.Context) error {
		return a.attachmentRepo.Activate(txCtx, ownerType, ownerID, formID)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Form not found")
		}
		return nil, err
	}
	return a.attachmentRepo.ListByOwner(ctx, ownerType, ownerID)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
