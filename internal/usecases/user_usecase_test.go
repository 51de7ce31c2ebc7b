package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/usecases"
	"keephy.backend/pkg/crypto"
	"keephy.backend/pkg/jwt"
)

type userDeps struct {
	users    *MockUserRepository
	notifier *MockNotifier
	identity *MockIdentityProvider
	billing  *MockBillingGateway
}

func newUserUsecaseForTest() (*usecases.UserUsecase, userDeps) {
	d := userDeps{
		users:    new(MockUserRepository),
		notifier: new(MockNotifier),
		identity: new(MockIdentityProvider),
		billing:  new(MockBillingGateway),
	}
	jwtSvc := jwt.NewJWTService("test-secret", time.Hour)
	return usecases.NewUserUsecase(d.users, d.notifier, d.identity, d.billing, jwtSvc, 10*time.Minute), d
}

func TestUserUsecase_SignUp_EmailTaken(t *testing.T) {
	uc, d := newUserUsecaseForTest()
	ctx := context.Background()

	d.users.On("GetByEmail", ctx, "taken@keephy.io").Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.SignUp(ctx, &entities.SignUpInput{Name: "Ann", Email: "taken@keephy.io", Password: "password1", CPassword: "password1"})
	assertAppError(t, err, http.StatusConflict, "user already register")
}

func TestUserUsecase_SignUp_EmailsOTP(t *testing.T) {
	uc, d := newUserUsecaseForTest()
	ctx := context.Background()

	var created *entities.User
	var sent gateways.Email
	d.users.On("GetByEmail", ctx, "new@keephy.io").Return(nil, domainerrors.ErrNotFound).Once()
	d.users.On("Create", ctx, mock.AnythingOfType("*entities.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entities.User)
	}).Return(nil).Once()
	d.users.On("Update", ctx, mock.AnythingOfType("*entities.User")).Return(nil).Once()
	d.notifier.On("Send", ctx, mock.AnythingOfType("gateways.Email")).Run(func(args mock.Arguments) {
		sent = args.Get(1).(gateways.Email)
	}).Return(nil).Once()

	result, err := uc.SignUp(ctx, &entities.SignUpInput{Name: "Ann", Email: "new@keephy.io", Password: "password1", CPassword: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.User.IsVerified)
	assert.Equal(t, created.ID, result.User.ID)
	assert.True(t, result.User.OTPHash.Valid)
	assert.NotEqual(t, "password1", result.User.PasswordHash)

	assert.Equal(t, []string{"new@keephy.io"}, sent.To)
	assert.Equal(t, "Your Password reset otp (valid for 10 mint)", sent.Subject)
	code := strings.TrimPrefix(sent.Text, "Your Reset Password OTP is ")
	assert.Len(t, code, 4)
	assert.True(t, crypto.CheckPassword(code, result.User.OTPHash.String))
	d.users.AssertExpectations(t)
}

func TestUserUsecase_ForgotPassword_SendFailureClearsOTP(t *testing.T) {
	uc, d := newUserUsecaseForTest()
	ctx := context.Background()
	user := &entities.User{ID: uuid.New(), Email: "a@keephy.io", IsVerified: true}

	var persisted []bool
	d.users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	d.users.On("Update", ctx, user).Run(func(args mock.Arguments) {
		persisted = append(persisted, args.Get(1).(*entities.User).OTPHash.Valid)
	}).Return(nil).Twice()
	d.notifier.On("Send", ctx, mock.Anything).Return(errors.New("ses down")).Once()

	err := uc.ForgotPassword(ctx, &entities.ForgotPasswordInput{Email: user.Email})
	assertAppError(t, err, http.StatusInternalServerError, "something wrong to send email")
	assert.Equal(t, []bool{true, false}, persisted)
	assert.False(t, user.OTPExpiresAt.Valid)
}

func TestUserUsecase_ForgotPassword_UnknownEmail(t *testing.T) {
	uc, d := newUserUsecaseForTest()
	ctx := context.Background()
	d.users.On("GetByEmail", ctx, "ghost@keephy.io").Return(nil, domainerrors.ErrNotFound).Once()

	err := uc.ForgotPassword(ctx, &entities.ForgotPasswordInput{Email: "ghost@keephy.io"})
	assertAppError(t, err, http.StatusNotFound, "No user have with this email")
}

func TestUserUsecase_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByEmail", ctx, "x@keephy.io").Return(nil, domainerrors.ErrNotFound).Once()
		_, err := uc.Login(ctx, &entities.LoginInput{Email: "x@keephy.io", Password: "p"})
		assertAppError(t, err, http.StatusNotFound, "email not found")
	})

	t.Run("unverified gets a new code", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: uuid.New(), Email: "u@keephy.io", PasswordHash: hash}
		d.users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		d.users.On("Update", ctx, user).Return(nil).Once()
		d.notifier.On("Send", ctx, mock.Anything).Return(nil).Once()

		_, err := uc.Login(ctx, &entities.LoginInput{Email: user.Email, Password: "correct-horse"})
		assertAppError(t, err, http.StatusForbidden, "user not verified")
		assert.True(t, user.OTPHash.Valid)
		d.notifier.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: uuid.New(), Email: "v@keephy.io", PasswordHash: hash, IsVerified: true}
		d.users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		_, err := uc.Login(ctx, &entities.LoginInput{Email: user.Email, Password: "nope"})
		assertAppError(t, err, http.StatusUnauthorized, "incorrect Password")
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: uuid.New(), Email: "v@keephy.io", PasswordHash: hash, IsVerified: true, Role: entities.UserRoleUser}
		d.users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		result, err := uc.Login(ctx, &entities.LoginInput{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, user, result.User)
	})
}

func TestUserUsecase_VerifyOTP(t *testing.T) {
	ctx := context.Background()
	code, hash, err := crypto.GenerateOTP()
	require.NoError(t, err)

	newUser := func(expires time.Time) *entities.User {
		return &entities.User{
			ID:           uuid.New(),
			Email:        "otp@keephy.io",
			OTPHash:      null.StringFrom(hash),
			OTPExpiresAt: null.TimeFrom(expires),
		}
	}

	t.Run("mismatch", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByEmail", ctx, "otp@keephy.io").Return(newUser(time.Now().Add(time.Minute)), nil).Once()
		wrong := "0000"
		if code == wrong {
			wrong = "0001"
		}
		_, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "otp@keephy.io", OTP: wrong})
		assertAppError(t, err, http.StatusUnauthorized, "your otp is invalid")
	})

	t.Run("no pending code", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByEmail", ctx, "otp@keephy.io").Return(&entities.User{ID: uuid.New()}, nil).Once()
		_, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "otp@keephy.io", OTP: code})
		assertAppError(t, err, http.StatusUnauthorized, "your otp is invalid")
	})

	t.Run("expired", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByEmail", ctx, "otp@keephy.io").Return(newUser(time.Now().Add(-time.Minute)), nil).Once()
		_, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "otp@keephy.io", OTP: code})
		assertAppError(t, err, http.StatusBadRequest, "your otp is expire please try again")
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := newUser(time.Now().Add(time.Minute))
		d.users.On("GetByEmail", ctx, "otp@keephy.io").Return(user, nil).Once()
		d.users.On("Update", ctx, user).Return(nil).Once()

		got, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "otp@keephy.io", OTP: code})
		require.NoError(t, err)
		assert.True(t, got.IsVerified)
		assert.False(t, got.OTPHash.Valid)
		assert.False(t, got.OTPExpiresAt.Valid)
	})
}

func TestUserUsecase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByEmail", ctx, "x@keephy.io").Return(nil, domainerrors.ErrNotFound).Once()
		_, err := uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: "x@keephy.io", Password: "newpassword", PasswordConfirm: "newpassword"})
		assertAppError(t, err, http.StatusBadRequest, "OTP is invalid and expire")
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: uuid.New(), Email: "r@keephy.io", OTPHash: null.StringFrom("h")}
		d.users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		d.users.On("Update", ctx, user).Return(nil).Once()

		result, err := uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: user.Email, Password: "newpassword", PasswordConfirm: "newpassword"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.True(t, crypto.CheckPassword("newpassword", user.PasswordHash))
		assert.False(t, user.OTPHash.Valid)
	})
}

func TestUserUsecase_GoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("provider failure", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.identity.On("ExchangeEmail", ctx, "bad").Return("", errors.New("invalid_grant")).Once()
		_, err := uc.GoogleLogin(ctx, &entities.GoogleLoginInput{Code: "bad"})
		assertAppError(t, err, http.StatusInternalServerError, "Error logging in")
	})

	t.Run("creates verified user", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.identity.On("ExchangeEmail", ctx, "code").Return("g@keephy.io", nil).Once()
		d.users.On("GetByEmail", ctx, "g@keephy.io").Return(nil, domainerrors.ErrNotFound).Once()
		d.users.On("Create", ctx, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "g@keephy.io" && u.IsVerified
		})).Return(nil).Once()

		result, err := uc.GoogleLogin(ctx, &entities.GoogleLoginInput{Code: "code"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		d.users.AssertExpectations(t)
	})

	t.Run("existing user", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: uuid.New(), Email: "g@keephy.io", IsVerified: true}
		d.identity.On("ExchangeEmail", ctx, "code").Return("g@keephy.io", nil).Once()
		d.users.On("GetByEmail", ctx, "g@keephy.io").Return(user, nil).Once()

		result, err := uc.GoogleLogin(ctx, &entities.GoogleLoginInput{Code: "code"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUsecase_SetSubscriptionWindow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("user missing", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByID", ctx, userID).Return(nil, domainerrors.ErrNotFound).Once()
		_, err := uc.SetSubscriptionWindow(ctx, userID, &entities.SubscriptionWindowInput{ExpiresAt: "2030-01-01T00:00:00Z"})
		assertAppError(t, err, http.StatusNotFound, "User not found")
	})

	t.Run("invalid expiry", func(t *testing.T) {
		for _, raw := range []string{"", "tomorrow"} {
			uc, d := newUserUsecaseForTest()
			d.users.On("GetByID", ctx, userID).Return(&entities.User{ID: userID}, nil).Once()
			_, err := uc.SetSubscriptionWindow(ctx, userID, &entities.SubscriptionWindowInput{ExpiresAt: raw})
			assertAppError(t, err, http.StatusUnprocessableEntity, "Invalid expiry date")
		}
	})

	t.Run("start defaults to now", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		user := &entities.User{ID: userID}
		d.users.On("GetByID", ctx, userID).Return(user, nil).Once()
		d.users.On("Update", ctx, user).Return(nil).Once()

		before := time.Now()
		got, err := uc.SetSubscriptionWindow(ctx, userID, &entities.SubscriptionWindowInput{ExpiresAt: "2099-01-01T00:00:00Z"})
		require.NoError(t, err)
		assert.False(t, got.Subscription.StartedAt.Time.Before(before))
		assert.Equal(t, 2099, got.Subscription.ExpiresAt.Time.Year())
		assert.True(t, got.Subscription.IsActive(time.Now()))
	})
}

func TestUserUsecase_AddCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("no user", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByID", ctx, userID).Return(nil, domainerrors.ErrNotFound).Once()
		err := uc.AddCard(ctx, userID, &entities.AddCardInput{Source: "tok_visa"})
		assertAppError(t, err, http.StatusNotFound, "No user found")
	})

	t.Run("no customer", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByID", ctx, userID).Return(&entities.User{ID: userID}, nil).Once()
		err := uc.AddCard(ctx, userID, &entities.AddCardInput{Source: "tok_visa"})
		assertAppError(t, err, http.StatusBadRequest, "User has no billing customer")
	})

	t.Run("processor error", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByID", ctx, userID).Return(&entities.User{ID: userID, CustomerID: null.StringFrom("cus_1")}, nil).Once()
		d.billing.On("AttachSource", ctx, "cus_1", "tok_bad").Return(errors.New("card declined")).Once()
		err := uc.AddCard(ctx, userID, &entities.AddCardInput{Source: "tok_bad"})
		assertAppError(t, err, http.StatusInternalServerError, "card declined")
	})

	t.Run("success", func(t *testing.T) {
		uc, d := newUserUsecaseForTest()
		d.users.On("GetByID", ctx, userID).Return(&entities.User{ID: userID, CustomerID: null.StringFrom("cus_1")}, nil).Once()
		d.billing.On("AttachSource", ctx, "cus_1", "tok_visa").Return(nil).Once()
		require.NoError(t, uc.AddCard(ctx, userID, &entities.AddCardInput{Source: "tok_visa"}))
	})
}
