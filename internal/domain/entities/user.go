package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// SubscriptionWindow is the period during which a user's forms are publicly loadable
type SubscriptionWindow struct {
	StartedAt null.Time `json:"startedAt"`
	ExpiresAt null.Time `json:"expiresAt"`
}

// IsActive reports whether now falls inside the window. A missing start counts
// as already started; a missing end is never active.
func (w SubscriptionWindow) IsActive(now time.Time) bool {
	if w.StartedAt.Valid && w.StartedAt.Time.After(now) {
		return false
	}
	if !w.ExpiresAt.Valid || !now.Before(w.ExpiresAt.Time) {
		return false
	}
	return true
}

// User represents a tenant account
type User struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	Role         UserRole           `json:"role"`
	IsVerified   bool               `json:"isVerified"`
	OTPHash      null.String        `json:"-"`
	OTPExpiresAt null.Time          `json:"-"`
	CustomerID   null.String        `json:"customerId"`
	IsSubscribed bool               `json:"isSubscribed"`
	Subscription SubscriptionWindow `json:"subscription"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ClearOTP drops any pending one-time code
func (u *User) ClearOTP() {
	u.OTPHash = null.String{}
	u.OTPExpiresAt = null.Time{}
}

// SignUpInput represents input for account registration
type SignUpInput struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	CPassword string `json:"cPassword" binding:"required,eqfield=Password"`
}

// LoginInput represents input for password login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordInput requests a password reset code
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPInput confirms an emailed one-time code
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=4,numeric"`
}

// ResetPasswordInput sets a new password
type ResetPasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

// GoogleLoginInput carries the OAuth authorization code from the frontend
type GoogleLoginInput struct {
	Code string `json:"code" binding:"required"`
}

// SubscriptionWindowInput sets the user's subscription window directly
type SubscriptionWindowInput struct {
	StartsAt  string `json:"startsAt"`
	ExpiresAt string `json:"expiresAt"`
}

// AddCardInput carries a tokenized card source from the payment processor
type AddCardInput struct {
	Source string `json:"source" binding:"required"`
}

// AuthResult is returned by flows that issue a session token
type AuthResult struct {
	User  *User
	Token string
}
