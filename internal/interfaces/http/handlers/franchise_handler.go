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

type FranchiseService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateFranchiseInput) (*entities.Franchise, error)
	ListByBusiness(ctx context.Context, userID, businessID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error)
	ListAll(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.FranchiseView], error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.FranchiseView, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateFranchiseInput) (*entities.Franchise, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AttachForms(ctx context.Context, userID, id uuid.UUID, input *entities.AttachFormsInput) (*entities.Franchise, error)
	ActivateForm(ctx context.Context, userID, id, formID uuid.UUID) (*entities.Franchise, error)
}

// FranchiseHandler handles location endpoints
type FranchiseHandler struct {
	franchiseUsecase FranchiseService
}

// NewFranchiseHandler creates a new franchise handler
func NewFranchiseHandler(franchiseUsecase FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseUsecase: franchiseUsecase}
}

// CreateFranchise
// POST /api/v1/franchise
func (h *FranchiseHandler) CreateFranchise(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	franchise, err := h.franchiseUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "franchise added successfully",
		"data":    franchise,
	})
}

// ListByBusiness
// GET /api/v1/franchise/getFranchiseByBusinessId/:id
func (h *FranchiseHandler) ListByBusiness(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	businessID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p := pageParams(c)
	result, err := h.franchiseUsecase.ListByBusiness(c.Request.Context(), userID, businessID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, franchiseEnvelope(result.Items, result.Total, p))
}

// ListFranchises lists every location of the tenant with its business inline
// GET /api/v1/franchise
func (h *FranchiseHandler) ListFranchises(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p := pageParams(c)
	result, err := h.franchiseUsecase.ListAll(c.Request.Context(), userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, true))
}

// GetFranchise
// GET /api/v1/franchise/:id
func (h *FranchiseHandler) GetFranchise(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	franchise, err := h.franchiseUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": franchise})
}

// UpdateFranchise
// PUT /api/v1/franchise/:id
func (h *FranchiseHandler) UpdateFranchise(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	franchise, err := h.franchiseUsecase.Update(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": gin.H{"doc": franchise}})
}

// DeleteFranchise
// DELETE /api/v1/franchise/deleteFranchise/:id
func (h *FranchiseHandler) DeleteFranchise(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.franchiseUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Franchise Deleted successfully",
	})
}

// AttachForms
// POST /api/v1/franchise/:id/forms
func (h *FranchiseHandler) AttachForms(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.AttachFormsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	franchise, err := h.franchiseUsecase.AttachForms(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": franchise})
}

// ActivateForm
// PUT /api/v1/franchise/:id/forms/:formId/activate
func (h *FranchiseHandler) ActivateForm(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	formID, err := pathID(c, "formId")
	if err != nil {
		response.Error(c, err)
		return
	}

	franchise, err := h.franchiseUsecase.ActivateForm(c.Request.Context(), userID, id, formID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": franchise})
}
