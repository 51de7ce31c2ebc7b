package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/interfaces/http/middleware"
	"keephy.backend/internal/interfaces/http/response"
)

type SubscriptionService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateSubscriptionInput, idempotencyKey string) (*entities.SubscriptionResult, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error)
	AutoRenew(ctx context.Context, userID uuid.UUID, input *entities.AutoRenewInput) error
	Cancel(ctx context.Context, userID uuid.UUID, subscriptionID string) error
}

// SubscriptionHandler handles plan subscription endpoints
type SubscriptionHandler struct {
	subscriptionUsecase SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionUsecase SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

// CreateSubscription subscribes the user to a plan. The Idempotency-Key
// header is forwarded to the payment processor.
// POST /api/v1/Subscription
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.subscriptionUsecase.Create(c.Request.Context(), userID, &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": result.Message,
		"user":    result.User,
	})
}

// ListActive
// GET /api/v1/Subscription/user-subscription
func (h *SubscriptionHandler) ListActive(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	subs, err := h.subscriptionUsecase.ListActive(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if subs == nil {
		subs = []*entities.Subscription{}
	}

	response.Success(c, http.StatusOK, gin.H{"userSubscriptions": subs})
}

// AutoRenew toggles renewal at period end
// POST /api/v1/Subscription/auto-renew
func (h *SubscriptionHandler) AutoRenew(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.AutoRenewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if err := h.subscriptionUsecase.AutoRenew(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Updated successfully"})
}

// Cancel
// DELETE /api/v1/Subscription/cancel-subscription/:subscriptionId
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.subscriptionUsecase.Cancel(c.Request.Context(), userID, c.Param("subscriptionId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Subscription cancelled successfully"})
}
