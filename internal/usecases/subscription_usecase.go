package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/utils"
)

// SubscriptionUsecase keeps local subscription records in step with the processor
type SubscriptionUsecase struct {
	userRepo repositories.UserRepository
	planRepo repositories.PlanRepository
	subRepo  repositories.SubscriptionRepository
	billing  gateways.BillingGateway
	uow      repositories.UnitOfWork
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	userRepo repositories.UserRepository,
	planRepo repositories.PlanRepository,
	subRepo repositories.SubscriptionRepository,
	billing gateways.BillingGateway,
	uow repositories.UnitOfWork,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		userRepo: userRepo,
		planRepo: planRepo,
		subRepo:  subRepo,
		billing:  billing,
		uow:      uow,
	}
}

// Create subscribes the user to a plan. Free plans are local only and
// idempotent; paid plans go through the processor first.
func (u *SubscriptionUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateSubscriptionInput, idempotencyKey string) (*entities.SubscriptionResult, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No user found")
		}
		return nil, err
	}

	active, err := u.subRepo.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, sub := range active {
		if sub.Plan != nil && !sub.Plan.Free {
			return nil, domainerrors.Forbidden("User already has subscription")
		}
	}

	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.Validation("planId: invalid id")
	}
	plan, err := u.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No plan found")
		}
		return nil, err
	}

	if plan.Free {
		return u.activateFree(ctx, user, plan, active)
	}
	return u.activatePaid(ctx, user, plan, input.PaymentMethod, idempotencyKey)
}

func (u *SubscriptionUsecase) activateFree(ctx context.Context, user *entities.User, plan *entities.Plan, active []*entities.Subscription) (*entities.SubscriptionResult, error) {
	result := &entities.SubscriptionResult{Message: "Free plan activated", User: user}
	for _, sub := range active {
		if sub.PlanID == plan.ID {
			return result, nil
		}
	}

	now := timeNow()
	sub := &entities.Subscription{
		ID:        utils.GenerateUUIDv7(),
		UserID:    user.ID,
		PlanID:    plan.ID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// one free plan at a time: switching free plans retires the previous record
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.subRepo.DeactivateFree(txCtx, user.ID); err != nil {
			return err
		}
		return u.subRepo.Create(txCtx, sub)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *SubscriptionUsecase) activatePaid(ctx context.Context, user *entities.User, plan *entities.Plan, paymentMethod, idempotencyKey string) (*entities.SubscriptionResult, error) {
	if !plan.PriceID.Valid || plan.PriceID.String == "" {
		return nil, domainerrors.BadRequest("Plan has no price")
	}

	customerID := user.CustomerID.String
	if !user.CustomerID.Valid || customerID == "" {
		id, err := u.billing.CreateCustomer(ctx, gateways.CustomerParams{
			Email:         user.Email,
			Name:          user.Name,
			PaymentMethod: paymentMethod,
		})
		if err != nil {
			return nil, domainerrors.Upstream(err.Error(), err)
		}
		customerID = id
	}

	remote, err := u.billing.CreateSubscription(ctx, gateways.SubscriptionParams{
		CustomerID:     customerID,
		PriceID:        plan.PriceID.String,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, domainerrors.Upstream(err.Error(), err)
	}

	now := timeNow()
	sub := &entities.Subscription{
		ID:             utils.GenerateUUIDv7(),
		UserID:         user.ID,
		PlanID:         plan.ID,
		SubscriptionID: remote.ID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	user.CustomerID = null.StringFrom(customerID)
	user.IsSubscribed = true
	user.Subscription = entities.SubscriptionWindow{
		StartedAt: null.TimeFrom(remote.CurrentPeriodStart),
		ExpiresAt: null.TimeFrom(remote.CurrentPeriodEnd),
	}
	user.UpdatedAt = now

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.subRepo.Create(txCtx, sub); err != nil {
			return err
		}
		if err := u.subRepo.DeactivateFree(txCtx, user.ID); err != nil {
			return err
		}
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		logger.Error(ctx, "Remote subscription created but local write failed",
			zap.String("user_id", user.ID.String()),
			zap.String("subscription_id", remote.ID),
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}
	return &entities.SubscriptionResult{Message: "Premium plan activated", User: user}, nil
}

// ListActive returns the user's active subscriptions with their plans
func (u *SubscriptionUsecase) ListActive(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error) {
	return u.subRepo.ListActiveByUser(ctx, userID)
}

// AutoRenew toggles renewal at the end of the current period
func (u *SubscriptionUsecase) AutoRenew(ctx context.Context, userID uuid.UUID, input *entities.AutoRenewInput) error {
	sub, err := u.subRepo.GetByRemoteID(ctx, userID, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No subscription record found")
		}
		return err
	}
	renew := input.Renew != nil && *input.Renew

	if err := u.billing.SetCancelAtPeriodEnd(ctx, sub.SubscriptionID, !renew); err != nil {
		return domainerrors.Upstream(err.Error(), err)
	}
	return u.subRepo.SetActive(ctx, sub.ID, renew)
}

// Cancel ends a subscription remotely and removes the local record.
// subscriptionID is the processor id, or the local id of a free subscription.
func (u *SubscriptionUsecase) Cancel(ctx context.Context, userID uuid.UUID, subscriptionID string) error {
	sub, err := u.findForCancel(ctx, userID, subscriptionID)
	if err != nil {
		return err
	}

	user, err := u.userRepo.GetByID(ctx, sub.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No user found")
		}
		return err
	}

	paid := sub.SubscriptionID != ""
	if paid {
		if err := u.billing.CancelSubscription(ctx, sub.SubscriptionID); err != nil {
			return domainerrors.Upstream(err.Error(), err)
		}
		// isSubscribed tracks the paid plan only
		user.IsSubscribed = false
		user.UpdatedAt = timeNow()
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.subRepo.Delete(txCtx, sub.ID); err != nil {
			return err
		}
		if !paid {
			return nil
		}
		return u.userRepo.Update(txCtx, user)
	})
}

func (u *SubscriptionUsecase) findForCancel(ctx context.Context, userID uuid.UUID, subscriptionID string) (*entities.Subscription, error) {
	sub, err := u.subRepo.GetByRemoteID(ctx, userID, subscriptionID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	localID, parseErr := uuid.Parse(subscriptionID)
	if parseErr != nil {
		return nil, domainerrors.NotFound("No subscription found")
	}
	sub, err = u.subRepo.GetByID(ctx, userID, localID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No subscription found")
		}
		return nil, err
	}
	// a free record retired by a later plan is history, not a live subscription
	if sub.SubscriptionID == "" && !sub.Active {
		return nil, domainerrors.NotFound("No subscription found")
	}
	return sub, nil
}
