package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/middleware"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/filestorage"
)

// ProductController handles donated product logging
type ProductController struct {
	productService *services.ProductService
	fileStorage    filestorage.FileStorage
}

// NewProductController creates a new ProductController
func NewProductController(productService *services.ProductService, fileStorage filestorage.FileStorage) *ProductController {
	return &ProductController{
		productService: productService,
		fileStorage:    fileStorage,
	}
}

// CreateProduct logs a donated product
// @Summary Log a donated product
// @Description Logs a donation. Donor and category may be referenced by ID or given as raw data, resolved through find-or-create. An optional photo file is uploaded alongside.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param donorId formData int false "Existing donor ID"
// @Param donorName formData string false "Donor name (with donorEmail, triggers find-or-create)"
// @Param donorEmail formData string false "Donor email"
// @Param donorHousing formData string false "Donor housing"
// @Param donorGradYear formData string false "Donor graduation year"
// @Param categoryId formData int false "Existing category ID"
// @Param categoryName formData string false "Category name (triggers find-or-create)"
// @Param description formData string false "Item description"
// @Param createdBy formData string false "Staff member logging the donation"
// @Param photo formData file false "Item photo"
// @Success 201 {object} dto.APIResponse{data=models.Product} "Product logged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Referenced donor or category not found"
// @Failure 500 {object} dto.ErrorResponse "Photo upload failed"
// @Router /products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid product data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The photo goes to the blob store before anything is written; an
	// upload failure aborts the whole request.
	var photoURL string
	if fileHeader, err := ctx.FormFile("photo"); err == nil && fileHeader != nil {
		photoURL, err = c.fileStorage.SaveFileWithPath(fileHeader, "products")
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewUpstreamError("failed to store product photo", err))
			return
		}
	}

	product, err := c.productService.CreateProduct(ctx, &req, photoURL)
	if err != nil {
		// The product was not written, so the uploaded photo is orphaned.
		if photoURL != "" {
			_ = c.fileStorage.DeleteFile(photoURL)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      product,
		Timestamp: time.Now(),
	})
}

// GetAllProducts lists products
// @Summary List products
// @Description Retrieves all logged products, newest first, with donor and category nested
// @Tags products
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Product} "Products retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /products [get]
func (c *ProductController) GetAllProducts(ctx *gin.Context) {
	products, err := c.productService.GetAllProducts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      products,
		Timestamp: time.Now(),
	})
}

// GetProductByID retrieves a product
// @Summary Get product by ID
// @Description Retrieves a single product with donor and category nested
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.APIResponse{data=models.Product} "Product retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /products/{id} [get]
func (c *ProductController) GetProductByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.productService.GetProductByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      product,
		Timestamp: time.Now(),
	})
}
