package usecases_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/usecases"
	"keephy.backend/pkg/utils"
)

type formDeps struct {
	forms       *MockFormRepository
	attachments *MockAttachmentRepository
	submissions *MockSubmissionRepository
	businesses  *MockBusinessRepository
	franchises  *MockFranchiseRepository
	users       *MockUserRepository
	notifier    *MockNotifier
}

func newFormUsecaseForTest() (*usecases.FormUsecase, formDeps) {
	d := formDeps{
		forms:       new(MockFormRepository),
		attachments: new(MockAttachmentRepository),
		submissions: new(MockSubmissionRepository),
		businesses:  new(MockBusinessRepository),
		franchises:  new(MockFranchiseRepository),
		users:       new(MockUserRepository),
		notifier:    new(MockNotifier),
	}
	uc := usecases.NewFormUsecase(d.forms, d.attachments, d.submissions, d.businesses, d.franchises, d.users, d.notifier, time.Second)
	return uc, d
}

func subscribedUser(id uuid.UUID) *entities.User {
	return &entities.User{
		ID: id,
		Subscription: entities.SubscriptionWindow{
			StartedAt: null.TimeFrom(time.Now().Add(-time.Hour)),
			ExpiresAt: null.TimeFrom(time.Now().Add(time.Hour)),
		},
	}
}

func TestFormUsecase_Create_ValidatesQuestions(t *testing.T) {
	uc, d := newFormUsecaseForTest()
	ctx := context.Background()

	_, err := uc.Create(ctx, uuid.New(), &entities.FormInput{
		Name:      "Feedback",
		Questions: []entities.Question{{Label: "Pick", Type: entities.QuestionDropdown}},
	})
	appErr, ok := domainerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Contains(t, appErr.Message, "options are required")
	d.forms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFormUsecase_Create(t *testing.T) {
	uc, d := newFormUsecaseForTest()
	ctx := context.Background()
	userID := uuid.New()
	d.forms.On("Create", ctx, mock.AnythingOfType("*entities.Form")).Return(nil).Once()

	form, err := uc.Create(ctx, userID, &entities.FormInput{
		Name: "Feedback",
		Questions: []entities.Question{
			{Label: "Rate us", Type: entities.QuestionRating, Payload: entities.RatingPayload{MinRating: 1, MaxRating: 5}},
			{Label: "Comments", Type: entities.QuestionLongText},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, userID, form.UserID)
	assert.Len(t, form.Questions, 2)
}

func TestFormUsecase_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty name", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		form := &entities.Form{ID: uuid.New(), UserID: userID, Name: "Old"}
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		_, err := uc.Update(ctx, userID, form.ID, &entities.UpdateFormInput{Name: strPtr("")})
		assertAppError(t, err, http.StatusUnprocessableEntity, "name: must not be empty")
	})

	t.Run("replaces questions", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		form := &entities.Form{ID: uuid.New(), UserID: userID, Name: "Old"}
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		d.forms.On("Update", ctx, form).Return(nil).Once()

		got, err := uc.Update(ctx, userID, form.ID, &entities.UpdateFormInput{
			Questions: []entities.Question{{Label: "Ok?", Type: entities.QuestionYesNo}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Old", got.Name)
		assert.Len(t, got.Questions, 1)
	})

	t.Run("other tenant", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		form := &entities.Form{ID: uuid.New(), UserID: uuid.New()}
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		_, err := uc.Update(ctx, userID, form.ID, &entities.UpdateFormInput{Name: strPtr("x")})
		assertAppError(t, err, http.StatusNotFound, "Form not found")
	})
}

func TestFormUsecase_ListByOwner(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	p := utils.PaginationParams{}

	t.Run("business of another tenant", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		business := &entities.Business{ID: uuid.New(), UserID: uuid.New()}
		d.businesses.On("GetByID", ctx, business.ID).Return(business, nil).Once()
		_, err := uc.ListByOwner(ctx, userID, entities.OwnerBusiness, business.ID, p)
		assertAppError(t, err, http.StatusNotFound, "Business not found")
	})

	t.Run("location", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		f := &entities.Franchise{ID: uuid.New(), UserID: userID}
		want := &entities.ListResult[entities.AttachedForm]{Items: []entities.AttachedForm{{Form: &entities.Form{ID: uuid.New()}, Code: "c", IsActive: true}}, Total: 1}
		d.franchises.On("GetByID", ctx, f.ID).Return(f, nil).Once()
		d.attachments.On("ListFormsByOwner", ctx, entities.OwnerLocation, f.ID, p).Return(want, nil).Once()

		got, err := uc.ListByOwner(ctx, userID, entities.OwnerLocation, f.ID, p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestFormUsecase_ListSubmissions_ForcesFormFilter(t *testing.T) {
	uc, d := newFormUsecaseForTest()
	ctx := context.Background()
	userID := uuid.New()
	form := &entities.Form{ID: uuid.New(), UserID: userID}
	moduleID := uuid.New()
	p := utils.ParsePage("2")
	want := entities.SubmissionFilter{FormID: form.ID, ModuleName: entities.OwnerBusiness, ModuleID: moduleID}

	d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
	d.submissions.On("List", ctx, want, p).Return(&entities.ListResult[*entities.FormSubmission]{Total: 11}, nil).Once()

	got, err := uc.ListSubmissions(ctx, userID, form.ID, entities.SubmissionFilter{FormID: uuid.New(), ModuleName: entities.OwnerBusiness, ModuleID: moduleID}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 11, got.Total)
}

func TestFormUsecase_ResolveByCode(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	form := &entities.Form{ID: uuid.New(), UserID: ownerID, Name: "Feedback"}
	business := &entities.Business{ID: uuid.New(), UserID: ownerID}
	franchise := &entities.Franchise{ID: uuid.New(), BusinessID: business.ID, UserID: ownerID}

	t.Run("unknown code", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "nope").Return(nil, domainerrors.ErrNotFound).Once()
		_, err := uc.ResolveByCode(ctx, "nope")
		appErr, ok := domainerrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})

	t.Run("deleted business", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "b-code").Return(&entities.FormAttachment{OwnerType: entities.OwnerBusiness, OwnerID: business.ID, FormID: form.ID, Code: "b-code"}, nil).Once()
		d.businesses.On("GetByID", ctx, business.ID).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := uc.ResolveByCode(ctx, "b-code")
		assertAppError(t, err, http.StatusNotFound, "No Form found by this code or business is not present")
	})

	t.Run("location whose business is deleted", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "l-code").Return(&entities.FormAttachment{OwnerType: entities.OwnerLocation, OwnerID: franchise.ID, FormID: form.ID, Code: "l-code"}, nil).Once()
		d.franchises.On("GetByID", ctx, franchise.ID).Return(franchise, nil).Once()
		d.businesses.On("GetByID", ctx, business.ID).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := uc.ResolveByCode(ctx, "l-code")
		assertAppError(t, err, http.StatusNotFound, "No Form found by this code or location is not present")
		d.forms.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("inactive subscription", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "b-code").Return(&entities.FormAttachment{OwnerType: entities.OwnerBusiness, OwnerID: business.ID, FormID: form.ID, Code: "b-code"}, nil).Once()
		d.businesses.On("GetByID", ctx, business.ID).Return(business, nil).Once()
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		expired := subscribedUser(ownerID)
		expired.Subscription.ExpiresAt = null.TimeFrom(time.Now().Add(-time.Minute))
		d.users.On("GetByID", ctx, ownerID).Return(expired, nil).Once()

		_, err := uc.ResolveByCode(ctx, "b-code")
		assertAppError(t, err, http.StatusForbidden, "User subscription is not active, can not load form")
	})

	t.Run("deleted form", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "b-code").Return(&entities.FormAttachment{OwnerType: entities.OwnerBusiness, OwnerID: business.ID, FormID: form.ID, Code: "b-code"}, nil).Once()
		d.businesses.On("GetByID", ctx, business.ID).Return(business, nil).Once()
		d.forms.On("GetByID", ctx, form.ID).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := uc.ResolveByCode(ctx, "b-code")
		assertAppError(t, err, http.StatusNotFound, "Form not found")
	})

	t.Run("location success", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.attachments.On("GetByCode", ctx, "l-code").Return(&entities.FormAttachment{OwnerType: entities.OwnerLocation, OwnerID: franchise.ID, FormID: form.ID, Code: "l-code"}, nil).Once()
		d.franchises.On("GetByID", ctx, franchise.ID).Return(franchise, nil).Once()
		d.businesses.On("GetByID", ctx, business.ID).Return(business, nil).Once()
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		d.users.On("GetByID", ctx, ownerID).Return(subscribedUser(ownerID), nil).Once()

		got, err := uc.ResolveByCode(ctx, "l-code")
		require.NoError(t, err)
		assert.Equal(t, form, got.Form)
		assert.Equal(t, entities.OwnerLocation, got.ModuleName)
		assert.Equal(t, franchise.ID, got.ModuleID)
		assert.Equal(t, "l-code", got.Code)
	})
}

func TestFormUsecase_Submit(t *testing.T) {
	ctx := context.Background()
	form := &entities.Form{
		ID: uuid.New(),
		Questions: []entities.Question{
			{Label: "A", Type: entities.QuestionShortText},
			{Label: "B", Type: entities.QuestionShortText},
			{Label: "C", Type: entities.QuestionShortText},
		},
	}
	moduleID := uuid.New()
	input := func() *entities.SubmissionInput {
		return &entities.SubmissionInput{
			FormID:     form.ID.String(),
			Answers:    []entities.AnswerInput{{QuestionLabel: "B", Answer: strPtr("b")}, {QuestionLabel: "A", Answer: strPtr("a")}},
			Email:      "visitor@example.com",
			Phone:      "+14155550100",
			ModuleName: "business",
			ModuleID:   moduleID.String(),
			Code:       "d-cba1",
		}
	}

	t.Run("form missing", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.forms.On("GetByID", ctx, form.ID).Return(nil, domainerrors.ErrNotFound).Once()
		_, err := uc.Submit(ctx, input())
		assertAppError(t, err, http.StatusNotFound, "Form not found by form Id")
	})

	t.Run("reconciles answers", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		done := make(chan struct{})
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		d.submissions.On("Create", ctx, mock.AnythingOfType("*entities.FormSubmission")).Return(nil).Once()
		d.businesses.On("GetByID", mock.Anything, moduleID).Run(func(mock.Arguments) { close(done) }).
			Return(&entities.Business{ID: moduleID}, nil).Once()

		got, err := uc.Submit(ctx, input())
		require.NoError(t, err)
		require.Len(t, got.Answers, 3)
		assert.Equal(t, "A", got.Answers[0].QuestionLabel)
		assert.Equal(t, "a", *got.Answers[0].Answer)
		assert.Equal(t, "b", *got.Answers[1].Answer)
		assert.Nil(t, got.Answers[2].Answer)
		assert.Equal(t, entities.OwnerBusiness, got.ModuleName)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("notification lookup did not run")
		}
		d.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("duplicate", func(t *testing.T) {
		uc, d := newFormUsecaseForTest()
		d.forms.On("GetByID", ctx, form.ID).Return(form, nil).Once()
		d.submissions.On("Create", ctx, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()
		_, err := uc.Submit(ctx, input())
		assertAppError(t, err, http.StatusConflict, "Submission already exists")
	})
}
