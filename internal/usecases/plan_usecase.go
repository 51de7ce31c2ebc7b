package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/domain/repositories"
	"keephy.backend/pkg/utils"
)

// PlanUsecase manages subscription plans and mirrors paid ones to the processor
type PlanUsecase struct {
	planRepo repositories.PlanRepository
	billing  gateways.BillingGateway
}

// NewPlanUsecase creates a new plan usecase
func NewPlanUsecase(planRepo repositories.PlanRepository, billing gateways.BillingGateway) *PlanUsecase {
	return &PlanUsecase{planRepo: planRepo, billing: billing}
}

// Create adds a plan. Paid plans get a processor product and recurring price.
func (u *PlanUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreatePlanInput) (*entities.Plan, error) {
	if input.Price == nil || *input.Price < 0 {
		return nil, domainerrors.Validation("price: must be zero or more")
	}

	now := timeNow()
	plan := &entities.Plan{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         *input.Price,
		Interval:      input.Interval,
		IntervalCount: input.IntervalCount,
		Free:          input.Free,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if plan.Interval == "" {
		plan.Interval = entities.IntervalMonth
	}
	if plan.IntervalCount < 1 {
		plan.IntervalCount = 1
	}

	if !plan.Free {
		productID, err := u.billing.CreateProduct(ctx, plan.Name)
		if err != nil {
			return nil, domainerrors.Upstream(err.Error(), err)
		}
		plan.ProductID = null.StringFrom(productID)

		priceID, err := u.billing.CreatePrice(ctx, priceParams(plan))
		if err != nil {
			return nil, domainerrors.Upstream(err.Error(), err)
		}
		plan.PriceID = null.StringFrom(priceID)
	}

	if err := u.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns plans ordered by price
func (u *PlanUsecase) List(ctx context.Context, p utils.PaginationParams) (*entities.ListResult[*entities.Plan], error) {
	return u.planRepo.List(ctx, p)
}

// Get returns one plan
func (u *PlanUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	plan, err := u.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No plan found")
		}
		return nil, err
	}
	return plan, nil
}

// Update changes a plan. A new name renames the remote product; a new price,
// interval or count replaces the remote price.
func (u *PlanUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePlanInput) (*entities.Plan, error) {
	plan, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		plan.Description = input.Description
	}

	renamed := input.Name != nil && *input.Name != "" && *input.Name != plan.Name
	if renamed {
		plan.Name = *input.Name
	}

	repriced := false
	if input.Price != nil && *input.Price != plan.Price {
		plan.Price = *input.Price
		repriced = true
	}
	if input.Interval != nil && *input.Interval != plan.Interval {
		plan.Interval = *input.Interval
		repriced = true
	}
	if input.IntervalCount != nil && *input.IntervalCount != plan.IntervalCount {
		plan.IntervalCount = *input.IntervalCount
		repriced = true
	}

	if !plan.Free && plan.ProductID.Valid {
		if renamed {
			if err := u.billing.UpdateProduct(ctx, plan.ProductID.String, plan.Name); err != nil {
				return nil, domainerrors.Upstream(err.Error(), err)
			}
		}
		if repriced {
			if plan.PriceID.Valid {
				if err := u.billing.DeactivatePrice(ctx, plan.PriceID.String); err != nil {
					return nil, domainerrors.Upstream(err.Error(), err)
				}
			}
			priceID, err := u.billing.CreatePrice(ctx, priceParams(plan))
			if err != nil {
				return nil, domainerrors.Upstream(err.Error(), err)
			}
			plan.PriceID = null.StringFrom(priceID)
		}
	}

	plan.UpdatedAt = timeNow()
	if err := u.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan
func (u *PlanUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("No Data Find by this Id")
		}
		return err
	}
	return nil
}

func priceParams(plan *entities.Plan) gateways.PriceParams {
	return gateways.PriceParams{
		ProductID:     plan.ProductID.String,
		AmountCents:   plan.AmountCents(),
		Interval:      string(plan.Interval),
		IntervalCount: plan.IntervalCount,
	}
}
