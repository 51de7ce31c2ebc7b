package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. A taken email fails with ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := toUserModel(user)
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toUserEntity(&m), nil
}

// Update persists every mutable column
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	m := toUserModel(user)
	updates := map[string]interface{}{
		"name":                    m.Name,
		"email":                   m.Email,
		"password_hash":           m.PasswordHash,
		"role":                    m.Role,
		"is_verified":             m.IsVerified,
		"otp_hash":                m.OTPHash,
		"otp_expires_at":          m.OTPExpiresAt,
		"customer_id":             m.CustomerID,
		"is_subscribed":           m.IsSubscribed,
		"subscription_started_at": m.SubscriptionStartedAt,
		"subscription_expires_at": m.SubscriptionExpiresAt,
		"updated_at":              time.Now(),
	}
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	return affected(result)
}

// ClearExpiredOTPs removes OTP state whose expiry is before now
func (r *UserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("otp_expires_at IS NOT NULL AND otp_expires_at < ?", now).
		Updates(map[string]interface{}{"otp_hash": nil, "otp_expires_at": nil})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toUserModel(u *entities.User) *models.User {
	return &models.User{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		Role:                  string(u.Role),
		IsVerified:            u.IsVerified,
		OTPHash:               u.OTPHash.Ptr(),
		OTPExpiresAt:          u.OTPExpiresAt.Ptr(),
		CustomerID:            u.CustomerID.Ptr(),
		IsSubscribed:          u.IsSubscribed,
		SubscriptionStartedAt: u.Subscription.StartedAt.Ptr(),
		SubscriptionExpiresAt: u.Subscription.ExpiresAt.Ptr(),
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		IsVerified:   m.IsVerified,
		OTPHash:      null.StringFromPtr(m.OTPHash),
		OTPExpiresAt: null.TimeFromPtr(m.OTPExpiresAt),
		CustomerID:   null.StringFromPtr(m.CustomerID),
		IsSubscribed: m.IsSubscribed,
		Subscription: entities.SubscriptionWindow{
			StartedAt: null.TimeFromPtr(m.SubscriptionStartedAt),
			ExpiresAt: null.TimeFromPtr(m.SubscriptionExpiresAt),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
