package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/crypto"
	"keephy.backend/pkg/jwt"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/metrics"
	"keephy.backend/pkg/utils"
)

// DefaultOTPTTL is how long an emailed code stays valid
const DefaultOTPTTL = 10 * time.Minute

var (
	timeNow     = time.Now
	generateOTP = crypto.GenerateOTP
)

// UserUsecase handles account, session and OTP flows
type UserUsecase struct {
	userRepo   repositories.UserRepository
	notifier   gateways.Notifier
	identity   gateways.IdentityProvider
	billing    gateways.BillingGateway
	jwtService *jwt.JWTService
	otpTTL     time.Duration
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	notifier gateways.Notifier,
	identity gateways.IdentityProvider,
	billing gateways.BillingGateway,
	jwtService *jwt.JWTService,
	otpTTL time.Duration,
) *UserUsecase {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &UserUsecase{
		userRepo:   userRepo,
		notifier:   notifier,
		identity:   identity,
		billing:    billing,
		jwtService: jwtService,
		otpTTL:     otpTTL,
	}
}

// SignUp registers an unverified user and emails a verification code
func (u *UserUsecase) SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.AuthResult, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("user already register")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := timeNow()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("user already register")
		}
		return nil, err
	}

	if err := u.issueOTP(ctx, user); err != nil {
		return nil, err
	}
	return u.session(user)
}

// Login authenticates with email and password. An unverified user gets a
// fresh code and is refused.
func (u *UserUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("email not found")
		}
		return nil, err
	}

	if !user.IsVerified {
		if err := u.issueOTP(ctx, user); err != nil {
			return nil, err
		}
		return nil, domainerrors.Forbidden("user not verified")
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("incorrect Password")
	}
	return u.session(user)
}

// ForgotPassword emails a reset code
func (u *UserUsecase) ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No user have with this email")
		}
		return err
	}
	return u.issueOTP(ctx, user)
}

// VerifyOTP checks an emailed code and marks the user verified
func (u *UserUsecase) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("your otp is invalid")
		}
		return nil, err
	}
	if !user.OTPHash.Valid || !crypto.CheckPassword(input.OTP, user.OTPHash.String) {
		return nil, domainerrors.Unauthorized("your otp is invalid")
	}
	if !user.OTPExpiresAt.Valid || !timeNow().Before(user.OTPExpiresAt.Time) {
		return nil, domainerrors.BadRequest("your otp is expire please try again")
	}

	user.IsVerified = true
	user.ClearOTP()
	user.UpdatedAt = timeNow()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword stores a new password and returns a fresh session
func (u *UserUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) (*entities.AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("OTP is invalid and expire")
		}
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	user.PasswordHash = passwordHash
	user.ClearOTP()
	user.UpdatedAt = timeNow()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.session(user)
}

// GoogleLogin signs in through Google, creating a verified user on first use
func (u *UserUsecase) GoogleLogin(ctx context.Context, input *entities.GoogleLoginInput) (*entities.AuthResult, error) {
	email, err := u.identity.ExchangeEmail(ctx, input.Code)
	if err != nil {
		logger.Warn(ctx, "Google login exchange failed", zap.Error(err))
		return nil, domainerrors.Upstream("Error logging in", err)
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return u.session(user)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := timeNow()
	user = &entities.User{
		ID:         utils.GenerateUUIDv7(),
		Email:      email,
		Role:       entities.UserRoleUser,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return u.session(user)
}

// SetSubscriptionWindow sets the period during which the user's forms load publicly
func (u *UserUsecase) SetSubscriptionWindow(ctx context.Context, userID uuid.UUID, input *entities.SubscriptionWindowInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	if input.ExpiresAt == "" {
		return nil, domainerrors.Validation("Invalid expiry date")
	}
	expiresAt, err := time.Parse(time.RFC3339, input.ExpiresAt)
	if err != nil {
		return nil, domainerrors.Validation("Invalid expiry date")
	}
	startsAt := timeNow()
	if input.StartsAt != "" {
		startsAt, err = time.Parse(time.RFC3339, input.StartsAt)
		if err != nil {
			return nil, domainerrors.Validation("Invalid start date")
		}
	}

	user.Subscription = entities.SubscriptionWindow{
		StartedAt: null.TimeFrom(startsAt),
		ExpiresAt: null.TimeFrom(expiresAt),
	}
	user.UpdatedAt = timeNow()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddCard attaches a tokenized card to the user's processor customer
func (u *UserUsecase) AddCard(ctx context.Context, userID uuid.UUID, input *entities.AddCardInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No user found")
		}
		return err
	}
	if !user.CustomerID.Valid || user.CustomerID.String == "" {
		return domainerrors.BadRequest("User has no billing customer")
	}
	if err := u.billing.AttachSource(ctx, user.CustomerID.String, input.Source); err != nil {
		return domainerrors.Upstream(err.Error(), err)
	}
	return nil
}

// Me returns the authenticated user
func (u *UserUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No user found")
		}
		return nil, err
	}
	return user, nil
}

// issueOTP persists a fresh code hash and emails the code. When the email
// cannot be sent the code is cleared again.
func (u *UserUsecase) issueOTP(ctx context.Context, user *entities.User) error {
	code, hash, err := generateOTP()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	user.OTPHash = null.StringFrom(hash)
	user.OTPExpiresAt = null.TimeFrom(timeNow().Add(u.otpTTL))
	user.UpdatedAt = timeNow()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	sendErr := u.notifier.Send(ctx, otpEmail(user.Email, code))
	metrics.NotificationsTotal.WithLabelValues("otp", metrics.Outcome(sendErr)).Inc()
	if sendErr == nil {
		return nil
	}

	logger.Error(ctx, "Failed to send OTP email",
		zap.String("user_id", user.ID.String()),
		zap.Error(sendErr),
	)
	user.ClearOTP()
	if err := u.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "Failed to clear OTP after send failure",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}
	return domainerrors.Upstream("something wrong to send email", sendErr)
}

func (u *UserUsecase) session(user *entities.User) (*entities.AuthResult, error) {
	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResult{User: user, Token: token}, nil
}
