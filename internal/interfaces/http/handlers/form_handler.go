package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/interfaces/http/response"
	"keephy.backend/pkg/utils"
)

type FormService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.FormInput) (*entities.Form, error)
	List(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Form], error)
	ListByOwner(ctx context.Context, userID uuid.UUID, ownerType entities.OwnerType, ownerID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[entities.AttachedForm], error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.Form, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateFormInput) (*entities.Form, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListSubmissions(ctx context.Context, userID, formID uuid.UUID, filter entities.SubmissionFilter, p utils.PaginationParams) (*entities.ListResult[*entities.FormSubmission], error)
	ResolveByCode(ctx context.Context, code string) (*entities.ResolvedForm, error)
	Submit(ctx context.Context, input *entities.SubmissionInput) (*entities.FormSubmission, error)
}

// FormHandler handles form, attachment lookup and submission endpoints
type FormHandler struct {
	formUsecase FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formUsecase FormService) *FormHandler {
	return &FormHandler{formUsecase: formUsecase}
}

// CreateForm
// POST /api/v1/typeForm/addTypeForm
func (h *FormHandler) CreateForm(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	form, err := h.formUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Form save successfully ",
		"Form":    form,
	})
}

// ListForms
// GET /api/v1/typeForm
func (h *FormHandler) ListForms(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p := pageParams(c)
	result, err := h.formUsecase.List(c.Request.Context(), userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, false))
}

// ListByBusiness
// GET /api/v1/typeForm/getFormByBusinessId/:id
func (h *FormHandler) ListByBusiness(c *gin.Context) {
	h.listByOwner(c, entities.OwnerBusiness)
}

// ListByLocation
// GET /api/v1/typeForm/getFormByLocationId/:id
func (h *FormHandler) ListByLocation(c *gin.Context) {
	h.listByOwner(c, entities.OwnerLocation)
}

func (h *FormHandler) listByOwner(c *gin.Context, ownerType entities.OwnerType) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ownerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p := pageParams(c)
	result, err := h.formUsecase.ListByOwner(c.Request.Context(), userID, ownerType, ownerID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, false))
}

// GetForm
// GET /api/v1/typeForm/getFormById/:id
func (h *FormHandler) GetForm(c *gin.Context) {
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

	form, err := h.formUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": form})
}

// UpdateForm
// PUT /api/v1/typeForm/updateFormById/:id
func (h *FormHandler) UpdateForm(c *gin.Context) {
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

	var input entities.UpdateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	form, err := h.formUsecase.Update(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": gin.H{"doc": form}})
}

// DeleteForm
// DELETE /api/v1/typeForm/deleteForm/:id
func (h *FormHandler) DeleteForm(c *gin.Context) {
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

	if err := h.formUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Form Deleted successfully",
	})
}

// ListSubmissions lists a form's submissions, optionally narrowed to one owner
// GET /api/v1/typeForm/getFormSubmissionByFormId/:id?moduleName=&moduleId=
func (h *FormHandler) ListSubmissions(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	formID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter entities.SubmissionFilter
	if name := c.Query("moduleName"); name != "" {
		filter.ModuleName = entities.OwnerType(name)
		if !filter.ModuleName.Valid() {
			response.Error(c, domainerrors.Validation("moduleName: must be one of business, location"))
			return
		}
	}
	if raw := c.Query("moduleId"); raw != "" {
		moduleID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid moduleId"))
			return
		}
		filter.ModuleID = moduleID
	}

	p := pageParams(c)
	result, err := h.formUsecase.ListSubmissions(c.Request.Context(), userID, formID, filter, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, false))
}

// GetFormByCode resolves a public attachment code
// GET /api/v1/typeForm/getFormByCode/:code
func (h *FormHandler) GetFormByCode(c *gin.Context) {
	resolved, err := h.formUsecase.ResolveByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": resolved})
}

// AddSubmission records a public form submission
// POST /api/v1/typeForm/addFormSubmission
func (h *FormHandler) AddSubmission(c *gin.Context) {
	var input entities.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	submission, err := h.formUsecase.Submit(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":    "Submission successful",
		"submission": submission,
	})
}
