package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/pkg/utils"
)

// FranchiseRepository implements location data operations
type FranchiseRepository struct {
	db *gorm.DB
}

// NewFranchiseRepository creates a new franchise repository
func NewFranchiseRepository(db *gorm.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

// Create inserts a location. A taken primary email fails with ErrAlreadyExists.
func (r *FranchiseRepository) Create(ctx context.Context, franchise *entities.Franchise) error {
	return translateError(GetDB(ctx, r.db).Create(toFranchiseModel(franchise)).Error)
}

func (r *FranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error) {
	var m models.Franchise
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toFranchiseEntity(&m), nil
}

func (r *FranchiseRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	return r.list(GetDB(ctx, r.db).Model(&models.Franchise{}).Where("business_id = ?", businessID), p)
}

func (r *FranchiseRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	return r.list(GetDB(ctx, r.db).Model(&models.Franchise{}).Where("user_id = ?", userID), p)
}

func (r *FranchiseRepository) list(query *gorm.DB, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	rows, total, err := listPage[models.Franchise](query, "created_at DESC", p)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Franchise, 0, len(rows))
	for i := range rows {
		items = append(items, toFranchiseEntity(&rows[i]))
	}
	return &entities.ListResult[*entities.Franchise]{Items: items, Total: total}, nil
}

func (r *FranchiseRepository) Update(ctx context.Context, franchise *entities.Franchise) error {
	m := toFranchiseModel(franchise)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(m).
		Select("primary_email", "reporting_emails", "address", "latitude", "longitude", "opening_hour", "closing_hour", "updated_at").
		Updates(m)
	return affected(result)
}

func (r *FranchiseRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Delete(&models.Franchise{}, "id = ?", id))
}

func toFranchiseModel(f *entities.Franchise) *models.Franchise {
	return &models.Franchise{
		ID:              f.ID,
		BusinessID:      f.BusinessID,
		UserID:          f.UserID,
		PrimaryEmail:    f.PrimaryEmail,
		ReportingEmails: nonNilStrings(f.ReportingEmails),
		Address:         f.Address,
		Longitude:       f.Location.Coordinates[0],
		Latitude:        f.Location.Coordinates[1],
		OpeningHour:     f.OpeningHour,
		ClosingHour:     f.ClosingHour,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func toFranchiseEntity(m *models.Franchise) *entities.Franchise {
	return &entities.Franchise{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		UserID:          m.UserID,
		PrimaryEmail:    m.PrimaryEmail,
		ReportingEmails: nonNilStrings(m.ReportingEmails),
		Address:         m.Address,
		Location:        entities.NewGeoPoint(m.Latitude, m.Longitude),
		OpeningHour:     m.OpeningHour,
		ClosingHour:     m.ClosingHour,
		Forms:           []entities.FormAttachment{},
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
