package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/interfaces/http/response"
	"keephy.backend/pkg/utils"
)

// LogoField is the multipart field carrying a business logo
const LogoField = "logo_img"

type BusinessService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.BusinessInput, logo *entities.Upload) (*entities.Business, error)
	List(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.BusinessView], error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.BusinessView, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateBusinessInput, logo *entities.Upload) (*entities.Business, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CreateReview(ctx context.Context, input *entities.ReviewInput) (*entities.Review, error)
	AttachForms(ctx context.Context, userID, id uuid.UUID, input *entities.AttachFormsInput) (*entities.Business, error)
	ActivateForm(ctx context.Context, userID, id, formID uuid.UUID) (*entities.Business, error)
}

// BusinessHandler handles business and review endpoints
type BusinessHandler struct {
	businessUsecase BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessUsecase BusinessService) *BusinessHandler {
	return &BusinessHandler{businessUsecase: businessUsecase}
}

// CreateBusiness creates a business from a multipart form with an optional logo
// POST /api/v1/business
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.BusinessInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	logo, closeLogo, err := formUpload(c, LogoField)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeLogo()

	business, err := h.businessUsecase.Create(c.Request.Context(), userID, &input, logo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Business added successfully",
		"Business": business,
	})
}

// ListBusinesses
// GET /api/v1/business
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p := pageParams(c)
	result, err := h.businessUsecase.List(c.Request.Context(), userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listEnvelope(result.Items, result.Total, p, true))
}

// GetBusiness
// GET /api/v1/business/:id
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
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

	business, err := h.businessUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": business})
}

// UpdateBusiness applies a partial multipart update. The logo is kept unless
// a new file is sent.
// PUT /api/v1/business/:id
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
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

	var input entities.UpdateBusinessInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	logo, closeLogo, err := formUpload(c, LogoField)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeLogo()

	business, err := h.businessUsecase.Update(c.Request.Context(), userID, id, &input, logo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Business updated successfully",
		"Business": business,
	})
}

// DeleteBusiness soft deletes a business
// DELETE /api/v1/business/deleteBusiness/:id
func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
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

	if err := h.businessUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "business Deleted successfully",
	})
}

// CreateReview records a public review against one or more businesses
// POST /api/v1/business/createReview
func (h *BusinessHandler) CreateReview(c *gin.Context) {
	var input entities.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if _, err := h.businessUsecase.CreateReview(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Review submitted successfully"})
}

// AttachForms
// POST /api/v1/business/:id/forms
func (h *BusinessHandler) AttachForms(c *gin.Context) {
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

	business, err := h.businessUsecase.AttachForms(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": business})
}

// ActivateForm
// PUT /api/v1/business/:id/forms/:formId/activate
func (h *BusinessHandler) ActivateForm(c *gin.Context) {
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

	business, err := h.businessUsecase.ActivateForm(c.Request.Context(), userID, id, formID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": business})
}

// formUpload opens an optional multipart file. The returned close func is
// always safe to call.
func formUpload(c *gin.Context, field string) (*entities.Upload, func(), error) {
	noop := func() {}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, domainerrors.BadRequest("Invalid " + field + " upload")
	}
	file, err := header.Open()
	if err != nil {
		return nil, noop, domainerrors.BadRequest("Invalid " + field + " upload")
	}
	return &entities.Upload{Filename: header.Filename, Body: file}, func() { _ = file.Close() }, nil
}
