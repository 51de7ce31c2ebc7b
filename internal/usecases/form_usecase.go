package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/metrics"
	"keephy.backend/pkg/utils"
)

// DefaultMailTimeout bounds one asynchronous notification send
const DefaultMailTimeout = 15 * time.Second

// FormUsecase handles form definitions, public resolution and submissions
type FormUsecase struct {
	formRepo       repositories.FormRepository
	attachmentRepo repositories.AttachmentRepository
	submissionRepo repositories.SubmissionRepository
	businessRepo   repositories.BusinessRepository
	franchiseRepo  repositories.FranchiseRepository
	userRepo       repositories.UserRepository
	notifier       gateways.Notifier
	mailTimeout    time.Duration

	// dispatch runs a notification job; asynchronous outside tests
	dispatch func(job func())
}

// NewFormUsecase creates a new form usecase
func NewFormUsecase(
	formRepo repositories.FormRepository,
	attachmentRepo repositories.AttachmentRepository,
	submissionRepo repositories.SubmissionRepository,
	businessRepo repositories.BusinessRepository,
	franchiseRepo repositories.FranchiseRepository,
	userRepo repositories.UserRepository,
	notifier gateways.Notifier,
	mailTimeout time.Duration,
) *FormUsecase {
	if mailTimeout <= 0 {
		mailTimeout = DefaultMailTimeout
	}
	return &FormUsecase{
		formRepo:       formRepo,
		attachmentRepo: attachmentRepo,
		submissionRepo: submissionRepo,
		businessRepo:   businessRepo,
		franchiseRepo:  franchiseRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		mailTimeout:    mailTimeout,
		dispatch:       func(job func()) { go job() },
	}
}

// Create stores a new form for the tenant
func (u *FormUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.FormInput) (*entities.Form, error) {
	if err := entities.ValidateQuestions(input.Questions); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	now := timeNow()
	form := &entities.Form{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Name:      input.Name,
		Questions: input.Questions,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// List returns the tenant's live forms
func (u *FormUsecase) List(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Form], error) {
	return u.formRepo.ListByUser(ctx, userID, p)
}

// ListByOwner returns the forms attached to a business or location of the
// tenant, annotated with their code and active flag
func (u *FormUsecase) ListByOwner(ctx context.Context, userID uuid.UUID, ownerType entities.OwnerType, ownerID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[entities.AttachedForm], error) {
	switch ownerType {
	case entities.OwnerBusiness:
		business, err := u.businessRepo.GetByID(ctx, ownerID)
		if err != nil || business.UserID != userID {
			return nil, ownerLookupError(err, "Business not found")
		}
	case entities.OwnerLocation:
		franchise, err := u.franchiseRepo.GetByID(ctx, ownerID)
		if err != nil || franchise.UserID != userID {
			return nil, ownerLookupError(err, "Franchise not found")
		}
	default:
		return nil, domainerrors.Validation("moduleName: must be business or location")
	}
	return u.attachmentRepo.ListFormsByOwner(ctx, ownerType, ownerID, p)
}

// Get returns one form of the tenant
func (u *FormUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Form, error) {
	form, err := u.formRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Form not found")
		}
		return nil, err
	}
	if form.UserID != userID {
		return nil, domainerrors.NotFound("Form not found")
	}
	return form, nil
}

// Update renames a form and/or replaces its questions
func (u *FormUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateFormInput) (*entities.Form, error) {
	form, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.Validation("name: must not be empty")
		}
		form.Name = *input.Name
	}
	if input.Questions != nil {
		if err := entities.ValidateQuestions(input.Questions); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
		form.Questions = input.Questions
	}
	form.UpdatedAt = timeNow()
	if err := u.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// Delete soft deletes a form. Its attachments stop resolving.
func (u *FormUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := u.formRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Form not found")
		}
		return err
	}
	return nil
}

// ListSubmissions returns the submissions of one of the tenant's forms
func (u *FormUsecase) ListSubmissions(ctx context.Context, userID, formID uuid.UUID, filter entities.SubmissionFilter, p utils.PaginationParams) (*entities.ListResult[*entities.FormSubmission], error) {
	if _, err := u.Get(ctx, userID, formID); err != nil {
		return nil, err
	}
	filter.FormID = formID
	return u.submissionRepo.List(ctx, filter, p)
}

// ResolveByCode loads the form behind a public attachment code. The owner,
// its business and the form must be live, and the owning user must hold an
// active subscription window.
func (u *FormUsecase) ResolveByCode(ctx context.Context, code string) (*entities.ResolvedForm, error) {
	attachment, err := u.attachmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No Form found by this code")
		}
		return nil, err
	}

	var ownerUserID uuid.UUID
	switch attachment.OwnerType {
	case entities.OwnerBusiness:
		business, err := u.businessRepo.GetByID(ctx, attachment.OwnerID)
		if err != nil {
			return nil, ownerLookupError(err, "No Form found by this code or business is not present")
		}
		ownerUserID = business.UserID
	case entities.OwnerLocation:
		franchise, err := u.franchiseRepo.GetByID(ctx, attachment.OwnerID)
		if err != nil {
			return nil, ownerLookupError(err, "No Form found by this code or location is not present")
		}
		if _, err := u.businessRepo.GetByID(ctx, franchise.BusinessID); err != nil {
			return nil, ownerLookupError(err, "No Form found by this code or location is not present")
		}
		ownerUserID = franchise.UserID
	default:
		return nil, domainerrors.NotFound("No Form found by this code")
	}

	form, err := u.formRepo.GetByID(ctx, attachment.FormID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Form not found")
		}
		return nil, err
	}

	owner, err := u.userRepo.GetByID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No user found")
		}
		return nil, err
	}
	if !owner.Subscription.IsActive(timeNow()) {
		return nil, domainerrors.Forbidden("User subscription is not active, can not load form")
	}

	return &entities.ResolvedForm{
		Form:       form,
		ModuleName: attachment.OwnerType,
		ModuleID:   attachment.OwnerID,
		Code:       attachment.Code,
	}, nil
}

// Submit records a public submission and notifies the owner's reporting
// addresses in the background
func (u *FormUsecase) Submit(ctx context.Context, input *entities.SubmissionInput) (*entities.FormSubmission, error) {
	formID, err := uuid.Parse(input.FormID)
	if err != nil {
		return nil, domainerrors.Validation("formId: invalid id")
	}
	moduleID, err := uuid.Parse(input.ModuleID)
	if err != nil {
		return nil, domainerrors.Validation("moduleId: invalid id")
	}
	moduleName := entities.OwnerType(input.ModuleName)
	if !moduleName.Valid() {
		return nil, domainerrors.Validation("moduleName: must be business or location")
	}

	form, err := u.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Form not found by form Id")
		}
		return nil, err
	}

	submission := &entities.FormSubmission{
		ID:         utils.GenerateUUIDv7(),
		ModuleName: moduleName,
		ModuleID:   moduleID,
		Code:       input.Code,
		FormID:     form.ID,
		Answers:    entities.ReconcileAnswers(form.Questions, input.Answers),
		Email:      input.Email,
		Phone:      input.Phone,
		CreatedAt:  timeNow(),
	}
	if err := u.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Submission already exists")
		}
		return nil, err
	}
	metrics.FormSubmissionsTotal.WithLabelValues(string(moduleName)).Inc()

	notifyCtx := context.WithoutCancel(ctx)
	u.dispatch(func() {
		u.notifySubmission(notifyCtx, form, submission)
	})
	return submission, nil
}

func (u *FormUsecase) notifySubmission(ctx context.Context, form *entities.Form, submission *entities.FormSubmission) {
	ctx, cancel := context.WithTimeout(ctx, u.mailTimeout)
	defer cancel()

	recipients, err := u.reportingEmails(ctx, submission.ModuleName, submission.ModuleID)
	if err != nil {
		logger.Warn(ctx, "Submission owner lookup failed",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
		return
	}
	if len(recipients) == 0 {
		return
	}

	email, err := submissionEmail(recipients, form, submission)
	if err == nil {
		err = u.notifier.Send(ctx, email)
	}
	metrics.NotificationsTotal.WithLabelValues("submission", metrics.Outcome(err)).Inc()
	if err != nil {
		logger.Error(ctx, "Failed to send submission notification",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
	}
}

func (u *FormUsecase) reportingEmails(ctx context.Context, moduleName entities.OwnerType, moduleID uuid.UUID) ([]string, error) {
	switch moduleName {
	case entities.OwnerBusiness:
		business, err := u.businessRepo.GetByID(ctx, moduleID)
		if err != nil {
			return nil, err
		}
		return uniqueEmails(business.ReportingEmails), nil
	case entities.OwnerLocation:
		franchise, err := u.franchiseRepo.GetByID(ctx, moduleID)
		if err != nil {
			return nil, err
		}
		return uniqueEmails(franchise.ReportingEmails), nil
	}
	return nil, nil
}

func ownerLookupError(err error, message string) error {
	if err == nil || errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(message)
	}
	return err
}
