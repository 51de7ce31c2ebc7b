package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// Update persists every mutable field of the user
	Update(ctx context.Context, user *entities.User) error
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}
