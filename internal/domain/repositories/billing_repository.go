package repositories

import (
	"context"

	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/pkg/utils"
)

// PlanRepository defines plan data operations
type PlanRepository interface {
	Create(ctx context.Context, plan *entities.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error)
	List(ctx context.Context, p utils.PaginationParams) (*entities.ListResult[*entities.Plan], error)
	Update(ctx context.Context, plan *entities.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubscriptionRepository defines subscription record operations
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.Subscription) error
	// ListActiveByUser returns active records with their plan loaded
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error)
	GetByRemoteID(ctx context.Context, userID uuid.UUID, subscriptionID string) (*entities.Subscription, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Subscription, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeactivateFree(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
