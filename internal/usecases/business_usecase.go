package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/utils"
)

// BusinessUsecase handles tenant businesses, their reviews and form attachments
type BusinessUsecase struct {
	businessRepo repositories.BusinessRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
	logos        gateways.LogoStore
	uow          repositories.UnitOfWork
	attacher     *formAttacher
}

// NewBusinessUsecase creates a new business usecase
func NewBusinessUsecase(
	businessRepo repositories.BusinessRepository,
	categoryRepo repositories.CategoryRepository,
	reviewRepo repositories.ReviewRepository,
	formRepo repositories.FormRepository,
	attachmentRepo repositories.AttachmentRepository,
	logos gateways.LogoStore,
	uow repositories.UnitOfWork,
	codes CodeGenerator,
) *BusinessUsecase {
	return &BusinessUsecase{
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		logos:        logos,
		uow:          uow,
		attacher: &formAttacher{
			formRepo:       formRepo,
			attachmentRepo: attachmentRepo,
			uow:            uow,
			codes:          codes,
		},
	}
}

// Create adds a business for the tenant. The subcategory must belong to the category.
func (u *BusinessUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.BusinessInput, logo *entities.Upload) (*entities.Business, error) {
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, domainerrors.Validation("categoryId: invalid id")
	}
	subCategoryID, err := uuid.Parse(input.SubCategoryID)
	if err != nil {
		return nil, domainerrors.Validation("subCategoryId: invalid id")
	}
	if _, _, err := u.resolveCategory(ctx, categoryID, subCategoryID); err != nil {
		return nil, err
	}

	now := timeNow()
	business := &entities.Business{
		ID:              utils.GenerateUUIDv7(),
		UserID:          userID,
		CategoryID:      categoryID,
		SubCategoryID:   subCategoryID,
		Name:            input.Name,
		PrimaryEmail:    input.PrimaryEmail,
		ReportingEmails: nonNil(input.ReportingEmails),
		Reviews:         []uuid.UUID{},
		Forms:           []entities.FormAttachment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if logo != nil {
		path, err := u.saveLogo(ctx, logo)
		if err != nil {
			return nil, err
		}
		business.Logo = null.StringFrom(path)
	}

	if err := u.businessRepo.Create(ctx, business); err != nil {
		u.discardLogo(ctx, business.Logo)
		return nil, err
	}
	return business, nil
}

// List returns the tenant's businesses with category, reviews and attachments
func (u *BusinessUsecase) List(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.BusinessView], error) {
	page, err := u.businessRepo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	views, err := u.views(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &entities.ListResult[*entities.BusinessView]{Items: views, Total: page.Total}, nil
}

// Get returns one business of the tenant
func (u *BusinessUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.BusinessView, error) {
	business, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	views, err := u.views(ctx, []*entities.Business{business})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Update applies the non-empty fields of input. The logo is replaced only
// when a new file is sent.
func (u *BusinessUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateBusinessInput, logo *entities.Upload) (*entities.Business, error) {
	business, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	categoryID, subCategoryID := business.CategoryID, business.SubCategoryID
	if input.CategoryID != "" {
		if categoryID, err = uuid.Parse(input.CategoryID); err != nil {
			return nil, domainerrors.Validation("categoryId: invalid id")
		}
	}
	if input.SubCategoryID != "" {
		if subCategoryID, err = uuid.Parse(input.SubCategoryID); err != nil {
			return nil, domainerrors.Validation("subCategoryId: invalid id")
		}
	}
	if categoryID != business.CategoryID || subCategoryID != business.SubCategoryID {
		if _, _, err := u.resolveCategory(ctx, categoryID, subCategoryID); err != nil {
			return nil, err
		}
	}
	business.CategoryID = categoryID
	business.SubCategoryID = subCategoryID

	if input.Name != "" {
		business.Name = input.Name
	}
	if input.PrimaryEmail != "" {
		business.PrimaryEmail = input.PrimaryEmail
	}
	if input.ReportingEmails != nil {
		business.ReportingEmails = input.ReportingEmails
	}

	oldLogo := business.Logo
	if logo != nil {
		path, err := u.saveLogo(ctx, logo)
		if err != nil {
			return nil, err
		}
		business.Logo = null.StringFrom(path)
	}
	business.UpdatedAt = timeNow()

	if err := u.businessRepo.Update(ctx, business); err != nil {
		if logo != nil {
			u.discardLogo(ctx, business.Logo)
		}
		return nil, err
	}
	if logo != nil {
		u.discardLogo(ctx, oldLogo)
	}
	return business, nil
}

// Delete soft deletes a business of the tenant
func (u *BusinessUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.businessRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Business not found")
		}
		return err
	}
	return nil
}

// CreateReview records a public review against one or more live businesses
func (u *BusinessUsecase) CreateReview(ctx context.Context, input *entities.ReviewInput) (*entities.Review, error) {
	ids, ok := utils.ParseUUIDs(input.BusinessIDs)
	if !ok || len(ids) == 0 {
		return nil, domainerrors.Validation("businessIds: invalid id")
	}
	ids = dedupeIDs(ids)

	found, err := u.businessRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, domainerrors.NotFound("Business not found")
		}
	}

	review := &entities.Review{
		ID:          utils.GenerateUUIDv7(),
		Name:        input.Name,
		Description: input.Description,
		Rating:      input.Rating,
		BusinessIDs: ids,
		CreatedAt:   timeNow(),
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.reviewRepo.Create(txCtx, review)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// AttachForms attaches the tenant's forms to a business
func (u *BusinessUsecase) AttachForms(ctx context.Context, userID, id uuid.UUID, input *entities.AttachFormsInput) (*entities.Business, error) {
	business, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	forms, err := u.attacher.attach(ctx, userID, entities.OwnerBusiness, business.ID, input.FormIDs)
	if err != nil {
		return nil, err
	}
	business.Forms = forms
	return business, nil
}

// ActivateForm makes formID the active form of a business
func (u *BusinessUsecase) ActivateForm(ctx context.Context, userID, id, formID uuid.UUID) (*entities.Business, error) {
	business, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	forms, err := u.attacher.activate(ctx, userID, entities.OwnerBusiness, business.ID, formID)
	if err != nil {
		return nil, err
	}
	business.Forms = forms
	return business, nil
}

// owned loads a live business and checks it belongs to the tenant
func (u *BusinessUsecase) owned(ctx context.Context, userID, id uuid.UUID) (*entities.Business, error) {
	business, err := u.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Business not found")
		}
		return nil, err
	}
	if business.UserID != userID {
		return nil, domainerrors.NotFound("Business not found")
	}
	return business, nil
}

func (u *BusinessUsecase) resolveCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) (*entities.Category, *entities.Subcategory, error) {
	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("Category not found")
		}
		return nil, nil, err
	}
	sub, ok := category.FindSubcategory(subCategoryID)
	if !ok {
		return nil, nil, domainerrors.NotFound("Subcategory not found")
	}
	return category, sub, nil
}

// views resolves categories, reviews and attachments for a set of businesses
func (u *BusinessUsecase) views(ctx context.Context, businesses []*entities.Business) ([]*entities.BusinessView, error) {
	ids := make([]uuid.UUID, 0, len(businesses))
	categoryIDs := make([]uuid.UUID, 0, len(businesses))
	for _, b := range businesses {
		ids = append(ids, b.ID)
		categoryIDs = append(categoryIDs, b.CategoryID)
	}

	categories, err := u.categoryRepo.GetByIDs(ctx, dedupeIDs(categoryIDs))
	if err != nil {
		return nil, err
	}
	reviews, err := u.reviewRepo.ListIDsByBusiness(ctx, ids)
	if err != nil {
		return nil, err
	}
	attachments, err := u.attacher.attachmentRepo.ListByOwners(ctx, entities.OwnerBusiness, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.BusinessView, 0, len(businesses))
	for _, b := range businesses {
		b.Reviews = reviews[b.ID]
		if b.Reviews == nil {
			b.Reviews = []uuid.UUID{}
		}
		b.Forms = attachments[b.ID]
		if b.Forms == nil {
			b.Forms = []entities.FormAttachment{}
		}

		view := &entities.BusinessView{Business: b}
		if category, ok := categories[b.CategoryID]; ok {
			reduced := &entities.Category{ID: category.ID, Name: category.Name, Subcategories: []entities.Subcategory{}}
			if sub, ok := category.FindSubcategory(b.SubCategoryID); ok {
				reduced.Subcategories = append(reduced.Subcategories, *sub)
				view.Subcategory = sub
			}
			view.Category = reduced
		}
		out = append(out, view)
	}
	return out, nil
}

func (u *BusinessUsecase) saveLogo(ctx context.Context, logo *entities.Upload) (string, error) {
	path, err := u.logos.Save(ctx, logo.Filename, logo.Body)
	if err != nil {
		if errors.Is(err, gateways.ErrInvalidUpload) {
			return "", domainerrors.Validation("logo_img: " + err.Error())
		}
		return "", domainerrors.InternalError(err)
	}
	return path, nil
}

func (u *BusinessUsecase) discardLogo(ctx context.Context, logo null.String) {
	if !logo.Valid || logo.String == "" {
		return
	}
	if err := u.logos.Delete(ctx, logo.String); err != nil {
		logger.Warn(ctx, "Failed to remove logo", zap.String("path", logo.String), zap.Error(err))
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
