package repositories

import (
	"context"

	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/pkg/utils"
)

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BusinessRepository defines business data operations. Deleted businesses
// are invisible to every read except GetByIDUnscoped.
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entities.Business, bool, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Business, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Business], error)
	Update(ctx context.Context, business *entities.Business) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FranchiseRepository defines location data operations
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *entities.Franchise) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error)
	ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error)
	Update(ctx context.Context, franchise *entities.Franchise) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	ListIDsByBusiness(ctx context.Context, businessIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}
