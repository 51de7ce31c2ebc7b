package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/utils"
)

// FranchiseUsecase handles the physical locations of a business
type FranchiseUsecase struct {
	franchiseRepo repositories.FranchiseRepository
	businessRepo  repositories.BusinessRepository
	geocoder      gateways.Geocoder
	attacher      *formAttacher
}

// NewFranchiseUsecase creates a new franchise usecase
func NewFranchiseUsecase(
	franchiseRepo repositories.FranchiseRepository,
	businessRepo repositories.BusinessRepository,
	formRepo repositories.FormRepository,
	attachmentRepo repositories.AttachmentRepository,
	geocoder gateways.Geocoder,
	uow repositories.UnitOfWork,
	codes CodeGenerator,
) *FranchiseUsecase {
	return &FranchiseUsecase{
		franchiseRepo: franchiseRepo,
		businessRepo:  businessRepo,
		geocoder:      geocoder,
		attacher: &formAttacher{
			formRepo:       formRepo,
			attachmentRepo: attachmentRepo,
			uow:            uow,
			codes:          codes,
		},
	}
}

// Create adds a location to a live business of the tenant
func (u *FranchiseUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateFranchiseInput) (*entities.Franchise, error) {
	businessID, err := uuid.Parse(input.BusinessID)
	if err != nil {
		return nil, domainerrors.Validation("businessId: invalid id")
	}
	business, deleted, err := u.businessRepo.GetByIDUnscoped(ctx, businessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Business not found")
		}
		return nil, err
	}
	if business.UserID != userID {
		return nil, domainerrors.NotFound("Business not found")
	}
	if deleted {
		return nil, domainerrors.NotFound("Business is deleted")
	}

	location, err := u.locate(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	franchise := &entities.Franchise{
		ID:              utils.GenerateUUIDv7(),
		BusinessID:      business.ID,
		UserID:          userID,
		PrimaryEmail:    input.PrimaryEmail,
		ReportingEmails: nonNil(input.ReportingEmails),
		Address:         input.Address,
		Location:        location,
		OpeningHour:     input.OpeningHour,
		ClosingHour:     input.ClosingHour,
		Forms:           []entities.FormAttachment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.franchiseRepo.Create(ctx, franchise); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Franchise with this primary email already exists")
		}
		return nil, err
	}
	return franchise, nil
}

// ListByBusiness returns the locations of one business. A missing or deleted
// business yields an empty list.
func (u *FranchiseUsecase) ListByBusiness(ctx context.Context, userID, businessID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	empty := &entities.ListResult[*entities.Franchise]{Items: []*entities.Franchise{}}
	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return empty, nil
		}
		return nil, err
	}
	if business.UserID != userID {
		return empty, nil
	}

	page, err := u.franchiseRepo.ListByBusiness(ctx, businessID, p)
	if err != nil {
		return nil, err
	}
	if err := u.withForms(ctx, page.Items); err != nil {
		return nil, err
	}
	return page, nil
}

// ListAll returns every location of the tenant with its business inline.
// The business is omitted when it has been deleted.
func (u *FranchiseUsecase) ListAll(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.FranchiseView], error) {
	page, err := u.franchiseRepo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	if err := u.withForms(ctx, page.Items); err != nil {
		return nil, err
	}

	businessIDs := make([]uuid.UUID, 0, len(page.Items))
	for _, f := range page.Items {
		businessIDs = append(businessIDs, f.BusinessID)
	}
	businesses, err := u.businessRepo.GetByIDs(ctx, dedupeIDs(businessIDs))
	if err != nil {
		return nil, err
	}

	views := make([]*entities.FranchiseView, 0, len(page.Items))
	for _, f := range page.Items {
		views = append(views, &entities.FranchiseView{Franchise: f, Business: businesses[f.BusinessID]})
	}
	return &entities.ListResult[*entities.FranchiseView]{Items: views, Total: page.Total}, nil
}

// Get returns one location whose business is still live
func (u *FranchiseUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.FranchiseView, error) {
	franchise, business, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := u.withForms(ctx, []*entities.Franchise{franchise}); err != nil {
		return nil, err
	}
	return &entities.FranchiseView{Franchise: franchise, Business: business}, nil
}

// Update applies a partial update; a changed address is geocoded again
func (u *FranchiseUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateFranchiseInput) (*entities.Franchise, error) {
	franchise, _, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.PrimaryEmail != nil {
		franchise.PrimaryEmail = *input.PrimaryEmail
	}
	if input.ReportingEmails != nil {
		franchise.ReportingEmails = input.ReportingEmails
	}
	if input.OpeningHour != nil {
		franchise.OpeningHour = *input.OpeningHour
	}
	if input.ClosingHour != nil {
		franchise.ClosingHour = *input.ClosingHour
	}
	if input.Address != nil && *input.Address != franchise.Address {
		location, err := u.locate(ctx, *input.Address)
		if err != nil {
			return nil, err
		}
		franchise.Address = *input.Address
		franchise.Location = location
	}
	franchise.UpdatedAt = timeNow()

	if err := u.franchiseRepo.Update(ctx, franchise); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Franchise with this primary email already exists")
		}
		return nil, err
	}
	if err := u.withForms(ctx, []*entities.Franchise{franchise}); err != nil {
		return nil, err
	}
	return franchise, nil
}

// Delete soft deletes a location of the tenant
func (u *FranchiseUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	franchise, err := u.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Franchise not found")
		}
		return err
	}
	if franchise.UserID != userID {
		return domainerrors.NotFound("Franchise not found")
	}
	if err := u.franchiseRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Franchise not found")
		}
		return err
	}
	return nil
}

// AttachForms attaches the tenant's forms to a location
func (u *FranchiseUsecase) AttachForms(ctx context.Context, userID, id uuid.UUID, input *entities.AttachFormsInput) (*entities.Franchise, error) {
	franchise, _, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	forms, err := u.attacher.attach(ctx, userID, entities.OwnerLocation, franchise.ID, input.FormIDs)
	if err != nil {
		return nil, err
	}
	franchise.Forms = forms
	return franchise, nil
}

// ActivateForm makes formID the active form of a location
func (u *FranchiseUsecase) ActivateForm(ctx context.Context, userID, id, formID uuid.UUID) (*entities.Franchise, error) {
	franchise, _, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	forms, err := u.attacher.activate(ctx, userID, entities.OwnerLocation, franchise.ID, formID)
	if err != nil {
		return nil, err
	}
	franchise.Forms = forms
	return franchise, nil
}

// owned loads a live location of the tenant together with its live business
func (u *FranchiseUsecase) owned(ctx context.Context, userID, id uuid.UUID) (*entities.Franchise, *entities.Business, error) {
	franchise, err := u.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("Franchise not found")
		}
		return nil, nil, err
	}
	if franchise.UserID != userID {
		return nil, nil, domainerrors.NotFound("Franchise not found")
	}
	business, err := u.businessRepo.GetByID(ctx, franchise.BusinessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("Business is deleted")
		}
		return nil, nil, err
	}
	return franchise, business, nil
}

func (u *FranchiseUsecase) locate(ctx context.Context, address string) (entities.GeoPoint, error) {
	lat, lng, err := u.geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Warn(ctx, "Geocoding failed", zap.String("address", address), zap.Error(err))
		return entities.GeoPoint{}, domainerrors.Upstream("Could not find location for the specified address.", err)
	}
	return entities.NewGeoPoint(lat, lng), nil
}

func (u *FranchiseUsecase) withForms(ctx context.Context, franchises []*entities.Franchise) error {
	if len(franchises) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(franchises))
	for _, f := range franchises {
		ids = append(ids, f.ID)
	}
	attachments, err := u.attacher.attachmentRepo.ListByOwners(ctx, entities.OwnerLocation, ids)
	if err != nil {
		return err
	}
	for _, f := range franchises {
		f.Forms = attachments[f.ID]
		if f.Forms == nil {
			f.Forms = []entities.FormAttachment{}
		}
	}
	return nil
}
