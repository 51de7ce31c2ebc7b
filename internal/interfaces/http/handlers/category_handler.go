package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/interfaces/http/response"
)

type CategoryService interface {
	CreateCategories(ctx context.Context, input *entities.CreateCategoriesInput) ([]*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	Subcategories(ctx context.Context, id uuid.UUID) ([]entities.Subcategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryUsecase CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryUsecase CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase}
}

// CreateCategories
// POST /api/v1/category
func (h *CategoryHandler) CreateCategories(c *gin.Context) {
	var input entities.CreateCategoriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, bindError(err))
		return
	}

	categories, err := h.categoryUsecase.CreateCategories(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":       "category created successfully",
		"newCategories": categories,
	})
}

// ListCategories
// GET /api/v1/category
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if categories == nil {
		categories = []*entities.Category{}
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// GetCategory
// GET /api/v1/category/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categoryUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": statusSuccess, "data": category})
}

// ListSubcategories
// GET /api/v1/category/:id/subcategories
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	subcategories, err := h.categoryUsecase.Subcategories(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if subcategories == nil {
		subcategories = []entities.Subcategory{}
	}

	response.Success(c, http.StatusOK, gin.H{"subcategories": subcategories})
}

// DeleteCategory
// DELETE /api/v1/category/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.categoryUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Data Deleted Successfully",
		"data":    nil,
	})
}
