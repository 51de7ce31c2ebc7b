package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/pkg/utils"
)

// BusinessRepository implements business data operations
type BusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	return translateError(GetDB(ctx, r.db).Create(toBusinessModel(business)).Error)
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	var m models.Business
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toBusinessEntity(&m), nil
}

// GetByIDUnscoped also finds soft deleted rows and reports whether the row is deleted
func (r *BusinessRepository) GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entities.Business, bool, error) {
	var m models.Business
	if err := GetDB(ctx, r.db).Unscoped().Where("id = ?", id).First(&m).Error; err != nil {
		return nil, false, translateError(err)
	}
	return toBusinessEntity(&m), m.DeletedAt.Valid, nil
}

func (r *BusinessRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Business, error) {
	out := make(map[uuid.UUID]*entities.Business, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Business
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = toBusinessEntity(&rows[i])
	}
	return out, nil
}

// ListByUser lists a tenant's businesses, newest first
func (r *BusinessRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Business], error) {
	query := GetDB(ctx, r.db).Model(&models.Business{}).Where("user_id = ?", userID)
	rows, total, err := listPage[models.Business](query, "created_at DESC", p)
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Business, 0, len(rows))
	for i := range rows {
		items = append(items, toBusinessEntity(&rows[i]))
	}
	return &entities.ListResult[*entities.Business]{Items: items, Total: total}, nil
}

func (r *BusinessRepository) Update(ctx context.Context, business *entities.Business) error {
	m := toBusinessModel(business)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(m).
		Select("category_id", "sub_category_id", "name", "primary_email", "reporting_emails", "logo", "updated_at").
		Updates(m)
	return affected(result)
}

func (r *BusinessRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Delete(&models.Business{}, "id = ?", id))
}

func toBusinessModel(b *entities.Business) *models.Business {
	return &models.Business{
		ID:              b.ID,
		UserID:          b.UserID,
		CategoryID:      b.CategoryID,
		SubCategoryID:   b.SubCategoryID,
		Name:            b.Name,
		PrimaryEmail:    b.PrimaryEmail,
		ReportingEmails: nonNilStrings(b.ReportingEmails),
		Logo:            b.Logo.Ptr(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBusinessEntity(m *models.Business) *entities.Business {
	return &entities.Business{
		ID:              m.ID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		SubCategoryID:   m.SubCategoryID,
		Name:            m.Name,
		PrimaryEmail:    m.PrimaryEmail,
		ReportingEmails: nonNilStrings(m.ReportingEmails),
		Logo:            null.StringFromPtr(m.Logo),
		Reviews:         []uuid.UUID{},
		Forms:           []entities.FormAttachment{},
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ReviewRepository implements review data operations
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores the review and links it to each business
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	db := GetDB(ctx, r.db)
	m := &models.Review{
		ID:          review.ID,
		Name:        review.Name,
		Description: review.Description,
		Rating:      review.Rating,
		CreatedAt:   review.CreatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return translateError(err)
	}
	if len(review.BusinessIDs) == 0 {
		return nil
	}
	links := make([]models.ReviewBusiness, 0, len(review.BusinessIDs))
	for _, id := range review.BusinessIDs {
		links = append(links, models.ReviewBusiness{ReviewID: review.ID, BusinessID: id})
	}
	return translateError(db.Create(&links).Error)
}

// ListIDsByBusiness returns review ids grouped by business
func (r *ReviewRepository) ListIDsByBusiness(ctx context.Context, businessIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(businessIDs))
	if len(businessIDs) == 0 {
		return out, nil
	}
	var links []models.ReviewBusiness
	err := GetDB(ctx, r.db).
		Table("review_businesses").
		Select("review_businesses.review_id, review_businesses.business_id").
		Joins("JOIN reviews ON reviews.id = review_businesses.review_id").
		Where("review_businesses.business_id IN ?", businessIDs).
		Order("reviews.created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		out[l.BusinessID] = append(out[l.BusinessID], l.ReviewID)
	}
	return out, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
