package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/pkg/utils"
)

func newForm(userID uuid.UUID, name string) *entities.Form {
	return &entities.Form{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Questions: []entities.Question{
			{Label: "How was it?", Required: true, Type: entities.QuestionRating, Payload: entities.RatingPayload{MinRating: 1, MaxRating: 5}},
			{Label: "Pick one", Type: entities.QuestionDropdown, Payload: entities.DropdownPayload{Options: []string{"a", "b"}}},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func newAttachment(owner entities.OwnerType, ownerID, formID uuid.UUID, code string, pos int) *entities.FormAttachment {
	return &entities.FormAttachment{
		ID:        uuid.New(),
		OwnerType: owner,
		OwnerID:   ownerID,
		FormID:    formID,
		Code:      code,
		Position:  pos,
		CreatedAt: time.Now(),
	}
}

func TestFormRepository_CRUDKeepsQuestionPayloads(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	f := newForm(owner, "Survey")
	require.NoError(t, repo.Create(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	require.Equal(t, entities.RatingPayload{MinRating: 1, MaxRating: 5}, got.Questions[0].Payload)
	require.Equal(t, entities.DropdownPayload{Options: []string{"a", "b"}}, got.Questions[1].Payload)

	got.Name = "Renamed"
	got.Questions = got.Questions[:1]
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.ListByUser(ctx, owner, utils.PaginationParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Total)
	require.Equal(t, "Renamed", list.Items[0].Name)
	require.Len(t, list.Items[0].Questions, 1)

	byIDs, err := repo.GetByIDs(ctx, []uuid.UUID{f.ID})
	require.NoError(t, err)
	require.Contains(t, byIDs, f.ID)

	require.NoError(t, repo.SoftDelete(ctx, f.ID))
	_, err = repo.GetByID(ctx, f.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, got), domainerrors.ErrNotFound)
}

func TestAttachmentRepository_CreateBatchConflicts(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()
	ownerID, formID := uuid.New(), uuid.New()

	require.NoError(t, repo.CreateBatch(ctx, []*entities.FormAttachment{
		newAttachment(entities.OwnerBusiness, ownerID, formID, "code-1", 0),
	}))

	err := repo.CreateBatch(ctx, []*entities.FormAttachment{
		newAttachment(entities.OwnerBusiness, uuid.New(), uuid.New(), "code-1", 0),
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists, "duplicate code")

	err = repo.CreateBatch(ctx, []*entities.FormAttachment{
		newAttachment(entities.OwnerBusiness, ownerID, formID, "code-2", 1),
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists, "duplicate owner/form")

	require.NoError(t, repo.CreateBatch(ctx, nil))
}

func TestAttachmentRepository_ActivateKeepsOneActive(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()
	ownerID, otherOwner := uuid.New(), uuid.New()
	f1, f2, f3 := uuid.New(), uuid.New(), uuid.New()

	first := newAttachment(entities.OwnerLocation, ownerID, f1, "c1", 0)
	first.IsActive = true
	require.NoError(t, repo.CreateBatch(ctx, []*entities.FormAttachment{
		first,
		newAttachment(entities.OwnerLocation, ownerID, f2, "c2", 1),
		newAttachment(entities.OwnerLocation, ownerID, f3, "c3", 2),
	}))
	foreign := newAttachment(entities.OwnerLocation, otherOwner, f2, "c4", 0)
	foreign.IsActive = true
	require.NoError(t, repo.CreateBatch(ctx, []*entities.FormAttachment{foreign}))

	require.NoError(t, repo.Activate(ctx, entities.OwnerLocation, ownerID, f2))

	items, err := repo.ListByOwner(ctx, entities.OwnerLocation, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	active := 0
	for _, a := range items {
		if a.IsActive {
			active++
			require.Equal(t, f2, a.FormID)
		}
	}
	require.Equal(t, 1, active)

	other, err := repo.ListByOwner(ctx, entities.OwnerLocation, otherOwner)
	require.NoError(t, err)
	require.True(t, other[0].IsActive, "other owners are untouched")

	err = repo.Activate(ctx, entities.OwnerLocation, ownerID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	err = repo.Activate(ctx, entities.OwnerBusiness, ownerID, f2)
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "owner type is part of the key")
}

func TestAttachmentRepository_ListFormsByOwnerSkipsDeletedForms(t *testing.T) {
	db := newMigratedDB(t)
	forms := NewFormRepository(db)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()
	userID, ownerID := uuid.New(), uuid.New()

	live := newForm(userID, "live")
	gone := newForm(userID, "gone")
	require.NoError(t, forms.Create(ctx, live))
	require.NoError(t, forms.Create(ctx, gone))
	liveAttachment := newAttachment(entities.OwnerBusiness, ownerID, live.ID, "live-code", 0)
	liveAttachment.IsActive = true
	require.NoError(t, repo.CreateBatch(ctx, []*entities.FormAttachment{
		liveAttachment,
		newAttachment(entities.OwnerBusiness, ownerID, gone.ID, "gone-code", 1),
	}))
	require.NoError(t, forms.SoftDelete(ctx, gone.ID))

	res, err := repo.ListFormsByOwner(ctx, entities.OwnerBusiness, ownerID, utils.ParsePage("1"))
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "live", res.Items[0].Name)
	require.Equal(t, "live-code", res.Items[0].Code)
	require.True(t, res.Items[0].IsActive)

	byCode, err := repo.GetByCode(ctx, "gone-code")
	require.NoError(t, err)
	require.Equal(t, gone.ID, byCode.FormID)
	require.Equal(t, entities.OwnerBusiness, byCode.OwnerType)

	_, err = repo.GetByCode(ctx, "nope")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	grouped, err := repo.ListByOwners(ctx, entities.OwnerBusiness, []uuid.UUID{ownerID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, grouped[ownerID], 2)
	require.Equal(t, "live-code", grouped[ownerID][0].Code)
}

func TestSubmissionRepository_ListFilters(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	formA, formB, module := uuid.New(), uuid.New(), uuid.New()
	answer := "yes"

	mk := func(formID uuid.UUID, name entities.OwnerType, at time.Time) *entities.FormSubmission {
		return &entities.FormSubmission{
			ID:         uuid.New(),
			ModuleName: name,
			ModuleID:   module,
			Code:       "c",
			FormID:     formID,
			Answers:    []entities.Answer{{QuestionLabel: "q", Answer: &answer}, {QuestionLabel: "skip"}},
			Email:      "guest@keephy.io",
			Phone:      "+15555550100",
			CreatedAt:  at,
		}
	}
	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, mk(formA, entities.OwnerBusiness, base)))
	require.NoError(t, repo.Create(ctx, mk(formA, entities.OwnerLocation, base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, mk(formB, entities.OwnerBusiness, base.Add(2*time.Minute))))

	all, err := repo.List(ctx, entities.SubmissionFilter{}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Equal(t, int64(3), all.Total)
	require.Equal(t, formB, all.Items[0].FormID, "newest first")

	byForm, err := repo.List(ctx, entities.SubmissionFilter{FormID: formA, ModuleName: entities.OwnerBusiness}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, byForm.Items, 1)
	require.Equal(t, "yes", *byForm.Items[0].Answers[0].Answer)
	require.Nil(t, byForm.Items[0].Answers[1].Answer)

	none, err := repo.List(ctx, entities.SubmissionFilter{ModuleID: uuid.New()}, utils.ParsePage("1"))
	require.NoError(t, err)
	require.Equal(t, int64(0), none.Total)
	require.Empty(t, none.Items)
}
