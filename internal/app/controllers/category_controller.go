package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/middleware"
)

// CategoryController handles product category operations
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// CreateCategory registers a category
// @Summary Create a category
// @Description Registers a category. Names are unique case-insensitively.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Category name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category, err := c.categoryService.CreateCategory(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// GetAllCategories lists categories
// @Summary List categories
// @Description Retrieves all categories ordered by name
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// GetCategoryByID retrieves a category
// @Summary Get category by ID
// @Description Retrieves a single category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}
