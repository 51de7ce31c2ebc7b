package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/interfaces/http/response"
	"keephy.backend/pkg/utils"
)

type PlanService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreatePlanInput) (*entities.Plan, error)
	List(ctx context.Context, p utils.PaginationParams) (*entities.ListResult[*entities.Plan], error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Plan, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePlanInput) (*entities.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanHandler handles subscription plan endpoints
type PlanHandler struct {
	planUsecase PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planUsecase PlanService) *PlanHandler {
	return &PlanHandler{planUsecase: planUsecase}
}

// CreatePlan
// POST /api/v1/plan
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	plan, err := h.planUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"newPlan": plan})
}

// ListPlans
// GET /api/v1/plan
func (h *PlanHandler) ListPlans(c *gin.Context) {
	p := pageParams(c)
	result, err := h.planUsecase.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, true))
}

// GetPlan
// GET /api/v1/plan/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	plan, err := h.planUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": plan})
}

// UpdatePlan
// PATCH /api/v1/plan/:id
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	plan, err := h.planUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Plan updated successfully",
		"plan":    plan,
	})
}

// DeletePlan
// DELETE /api/v1/plan/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.planUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Data Deleted Successfully",
		"data":    nil,
	})
}
