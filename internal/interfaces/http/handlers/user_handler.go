package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/interfaces/http/middleware"
	"keephy.backend/internal/interfaces/http/response"
)

type UserService interface {
	SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.AuthResult, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResult, error)
	ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error
	VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.User, error)
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) (*entities.AuthResult, error)
	GoogleLogin(ctx context.Context, input *entities.GoogleLoginInput) (*entities.AuthResult, error)
	SetSubscriptionWindow(ctx context.Context, userID uuid.UUID, input *entities.SubscriptionWindowInput) (*entities.User, error)
	AddCard(ctx context.Context, userID uuid.UUID, input *entities.AddCardInput) error
	Me(ctx context.Context, userID uuid.UUID) (*entities.User, error)
}

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// UserHandler handles account and session endpoints
type UserHandler struct {
	userUsecase UserService
	cookie      SessionCookie
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService, cookie SessionCookie) *UserHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultCookieName
	}
	return &UserHandler{userUsecase: userUsecase, cookie: cookie}
}

// SignUp registers an unverified account and mails its OTP
// POST /api/v1/user/signUp
func (h *UserHandler) SignUp(c *gin.Context) {
	var input entities.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.userUsecase.SignUp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusCreated, gin.H{"message": "OTP send to email please verify your email"})
}

// Login
// POST /api/v1/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.userUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusCreated, gin.H{
		"message": "User login successfully",
		"user":    result.User,
	})
}

// ForgotPassword mails a reset OTP
// POST /api/v1/user/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if err := h.userUsecase.ForgotPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "ResetPassword OTP send into email",
	})
}

// VerifyOTP
// POST /api/v1/user/verifyOTP
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var input entities.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	user, err := h.userUsecase.VerifyOTP(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "OTP verification successful",
	})
}

// ResetPassword
// POST /api/v1/user/resetPassword
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.userUsecase.ResetPassword(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusOK, gin.H{
		"user":    result.User,
		"message": "Your Password Changed successfully",
		"token":   result.Token,
	})
}

// GoogleLogin exchanges an OAuth authorization code for a session
// POST /api/v1/user/google-login
func (h *UserHandler) GoogleLogin(c *gin.Context) {
	var input entities.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.userUsecase.GoogleLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusCreated, gin.H{"message": "User login successfully"})
}

// SetSubscriptionWindow
// POST /api/v1/user/subscription
func (h *UserHandler) SetSubscriptionWindow(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.SubscriptionWindowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	user, err := h.userUsecase.SetSubscriptionWindow(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": user})
}

// AddCard attaches a card source to the user's billing customer
// POST /api/v1/user/addCard
func (h *UserHandler) AddCard(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.AddCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if err := h.userUsecase.AddCard(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "User card saved successfully"})
}

// Me
// GET /api/v1/user/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout clears the session cookie
// POST /api/v1/user/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.writeCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *UserHandler) setSession(c *gin.Context, token string) {
	if token == "" {
		return
	}
	h.writeCookie(c, token, int(h.cookie.MaxAge.Seconds()))
}

func (h *UserHandler) writeCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
