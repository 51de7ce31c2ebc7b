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

// PlanRepository implements plan data operations
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entities.Plan) error {
	return translateError(GetDB(ctx, r.db).Create(toPlanModel(plan)).Error)
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	var m models.Plan
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toPlanEntity(&m), nil
}

// List returns plans cheapest first
func (r *PlanRepository) List(ctx context.Context, p utils.PaginationParams) (*entities.ListResult[*entities.Plan], error) {
	rows, total, err := listPage[models.Plan](GetDB(ctx, r.db).Model(&models.Plan{}), "price ASC, created_at ASC", p)
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Plan, 0, len(rows))
	for i := range rows {
		items = append(items, toPlanEntity(&rows[i]))
	}
	return &entities.ListResult[*entities.Plan]{Items: items, Total: total}, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *entities.Plan) error {
	m := toPlanModel(plan)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(m).
		Select("name", "description", "price", "interval", "interval_count", "free", "product_id", "price_id", "updated_at").
		Updates(m)
	return affected(result)
}

func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Delete(&models.Plan{}, "id = ?", id))
}

func toPlanModel(p *entities.Plan) *models.Plan {
	return &models.Plan{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Interval:      string(p.Interval),
		IntervalCount: p.IntervalCount,
		Free:          p.Free,
		ProductID:     p.ProductID.Ptr(),
		PriceID:       p.PriceID.Ptr(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPlanEntity(m *models.Plan) *entities.Plan {
	return &entities.Plan{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Interval:      entities.PlanInterval(m.Interval),
		IntervalCount: m.IntervalCount,
		Free:          m.Free,
		ProductID:     null.StringFromPtr(m.ProductID),
		PriceID:       null.StringFromPtr(m.PriceID),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SubscriptionRepository implements subscription record operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	m := &models.Subscription{
		ID:             sub.ID,
		UserID:         sub.UserID,
		PlanID:         sub.PlanID,
		SubscriptionID: sub.SubscriptionID,
		Active:         sub.Active,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// ListActiveByUser returns the user's active records with their plans attached
func (r *SubscriptionRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error) {
	db := GetDB(ctx, r.db)
	var rows []models.Subscription
	if err := db.Where("user_id = ? AND active = ?", userID, true).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	planIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		planIDs = append(planIDs, row.PlanID)
	}
	plans := make(map[uuid.UUID]*entities.Plan, len(planIDs))
	if len(planIDs) > 0 {
		var planRows []models.Plan
		if err := db.Where("id IN ?", planIDs).Find(&planRows).Error; err != nil {
			return nil, err
		}
		for i := range planRows {
			plans[planRows[i].ID] = toPlanEntity(&planRows[i])
		}
	}

	out := make([]*entities.Subscription, 0, len(rows))
	for i := range rows {
		sub := toSubscriptionEntity(&rows[i])
		sub.Plan = plans[sub.PlanID]
		out = append(out, sub)
	}
	return out, nil
}

func (r *SubscriptionRepository) GetByRemoteID(ctx context.Context, userID uuid.UUID, subscriptionID string) (*entities.Subscription, error) {
	var m models.Subscription
	err := GetDB(ctx, r.db).Where("user_id = ? AND subscription_id = ?", userID, subscriptionID).First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toSubscriptionEntity(&m), nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	if err := GetDB(ctx, r.db).Where("user_id = ? AND id = ?", userID, id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toSubscriptionEntity(&m), nil
}

func (r *SubscriptionRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := GetDB(ctx, r.db).Model(&models.Subscription{}).Where("id = ?", id).
		Updates(map[string]interface{}{"active": active, "updated_at": time.Now()})
	return affected(result)
}

// DeactivateFree turns off every active free-plan record of the user
func (r *SubscriptionRepository) DeactivateFree(ctx context.Context, userID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	freePlans := db.Session(&gorm.Session{NewDB: true}).Model(&models.Plan{}).Select("id").Where("free = ?", true)
	return db.Model(&models.Subscription{}).
		Where("user_id = ? AND active = ? AND plan_id IN (?)", userID, true, freePlans).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now()}).Error
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Delete(&models.Subscription{}, "id = ?", id))
}

func toSubscriptionEntity(m *models.Subscription) *entities.Subscription {
	return &entities.Subscription{
		ID:             m.ID,
		UserID:         m.UserID,
		PlanID:         m.PlanID,
		SubscriptionID: m.SubscriptionID,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
