package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/middleware"
)

// VerificationController handles the donation verification pipeline
type VerificationController struct {
	verificationService *services.VerificationService
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(verificationService *services.VerificationService) *VerificationController {
	return &VerificationController{
		verificationService: verificationService,
	}
}

// CreateCheckout records a donation drop-off batch
// @Summary Record a drop-off batch
// @Description Creates a donation batch with its items; batch and items start pending
// @Tags verification
// @Accept json
// @Produce json
// @Param request body dto.CreateCheckoutRequest true "Batch information"
// @Success 201 {object} dto.APIResponse{data=models.Checkout} "Batch created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification/checkouts [post]
func (c *VerificationController) CreateCheckout(ctx *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid checkout data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	checkout, err := c.verificationService.CreateCheckout(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      checkout,
		Timestamp: time.Now(),
	})
}

// ListCheckouts lists drop-off batches with stats
// @Summary List drop-off batches
// @Description Retrieves batches with nested items and the verification stats block
// @Tags verification
// @Produce json
// @Param status query string false "Filter by verification status" Enums(pending, approved, flagged)
// @Param limit query int false "Maximum number of batches"
// @Param lastMonthOnly query bool false "Only batches from the last 30 days"
// @Success 200 {object} dto.APIResponse{data=dto.VerificationListResponse} "Batches retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification/checkouts [get]
func (c *VerificationController) ListCheckouts(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit")
			errorDetail = errorDetail.WithDetails("limit must be a non-negative number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}
	lastMonthOnly := ctx.Query("lastMonthOnly") == "true"

	list, err := c.verificationService.ListCheckouts(ctx, ctx.Query("status"), limit, lastMonthOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// GetCheckoutByID retrieves one batch
// @Summary Get a drop-off batch
// @Description Retrieves one batch with its items
// @Tags verification
// @Produce json
// @Param id path int true "Checkout ID"
// @Success 200 {object} dto.APIResponse{data=models.Checkout} "Batch retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid checkout ID"
// @Failure 404 {object} dto.ErrorResponse "Checkout not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification/checkouts/{id} [get]
func (c *VerificationController) GetCheckoutByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	checkout, err := c.verificationService.GetCheckoutByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      checkout,
		Timestamp: time.Now(),
	})
}

// UpdateCheckoutStatus moves a batch to a new verification status
// @Summary Update batch verification status
// @Description Sets a batch's status and cascades it to every item in the batch
// @Tags verification
// @Accept json
// @Produce json
// @Param id path int true "Checkout ID"
// @Param request body dto.UpdateVerificationRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Checkout} "Batch updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Checkout not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification/checkouts/{id} [patch]
func (c *VerificationController) UpdateCheckoutStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	checkout, err := c.verificationService.UpdateCheckoutStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      checkout,
		Timestamp: time.Now(),
	})
}

// UpdateItemStatus moves a single item to a new verification status
// @Summary Update item verification status
// @Description Sets one item's status without touching its parent batch
// @Tags verification
// @Accept json
// @Produce json
// @Param id path int true "Checkout item ID"
// @Param request body dto.UpdateVerificationRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.CheckoutItem} "Item updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Checkout item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification/items/{id} [patch]
func (c *VerificationController) UpdateItemStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.verificationService.UpdateItemStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}
