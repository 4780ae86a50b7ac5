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

// FridgeController handles fridge lending operations
type FridgeController struct {
	fridgeService *services.FridgeService
}

// NewFridgeController creates a new FridgeController
func NewFridgeController(fridgeService *services.FridgeService) *FridgeController {
	return &FridgeController{
		fridgeService: fridgeService,
	}
}

// parseIDParam reads a positive int64 path parameter, writing the error
// response itself on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateFridge registers a fridge
// @Summary Register a new fridge
// @Description Adds a fridge to the lending pool. A fridge in Needs Repair condition starts in maintenance.
// @Tags fridges
// @Accept json
// @Produce json
// @Param request body dto.CreateFridgeRequest true "Fridge information"
// @Success 201 {object} dto.APIResponse{data=models.Fridge} "Fridge created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Fridge number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges [post]
func (c *FridgeController) CreateFridge(ctx *gin.Context) {
	var req dto.CreateFridgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fridge data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fridge, err := c.fridgeService.CreateFridge(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      fridge,
		Timestamp: time.Now(),
	})
}

// ListFridges lists fridges
// @Summary List fridges
// @Description Retrieves all fridges, optionally filtered by status
// @Tags fridges
// @Produce json
// @Param status query string false "Filter by status" Enums(available, checked_out, maintenance)
// @Success 200 {object} dto.APIResponse{data=[]models.Fridge} "Fridges retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges [get]
func (c *FridgeController) ListFridges(ctx *gin.Context) {
	fridges, err := c.fridgeService.ListFridges(ctx, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      fridges,
		Timestamp: time.Now(),
	})
}

// GetFridgeStats returns aggregate fridge counts
// @Summary Fridge statistics
// @Description Returns totals per status plus the derived overdue count
// @Tags fridges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.FridgeStats} "Stats retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/stats [get]
func (c *FridgeController) GetFridgeStats(ctx *gin.Context) {
	stats, err := c.fridgeService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetFridgeByID retrieves a fridge with its lending history
// @Summary Get fridge detail
// @Description Retrieves a fridge together with its active checkout and full checkout history
// @Tags fridges
// @Produce json
// @Param id path int true "Fridge ID"
// @Success 200 {object} dto.APIResponse{data=dto.FridgeDetailResponse} "Fridge retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid fridge ID"
// @Failure 404 {object} dto.ErrorResponse "Fridge not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/{id} [get]
func (c *FridgeController) GetFridgeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.fridgeService.GetFridgeDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// CheckoutFridge lends a fridge to a student
// @Summary Check out a fridge
// @Description Creates an active checkout for an available fridge and flips its status to checked_out
// @Tags fridges
// @Accept json
// @Produce json
// @Param request body dto.CheckoutFridgeRequest true "Checkout information"
// @Success 201 {object} dto.APIResponse{data=models.FridgeCheckout} "Checkout created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or fridge not available"
// @Failure 404 {object} dto.ErrorResponse "Fridge not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/checkout [post]
func (c *FridgeController) CheckoutFridge(ctx *gin.Context) {
	var req dto.CheckoutFridgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid checkout data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	checkout, err := c.fridgeService.CheckoutFridge(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      checkout,
		Timestamp: time.Now(),
	})
}

// ReturnFridge checks a fridge back in
// @Summary Return a fridge
// @Description Closes the active checkout for the fridge and routes it to available or maintenance based on the reported condition
// @Tags fridges
// @Accept json
// @Produce json
// @Param id path int true "Fridge ID"
// @Param request body dto.ReturnFridgeRequest true "Return information"
// @Success 200 {object} dto.APIResponse{data=models.FridgeCheckout} "Fridge returned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "No active checkout for this fridge"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/checkout/{id}/return [patch]
func (c *FridgeController) ReturnFridge(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReturnFridgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid return data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	checkout, err := c.fridgeService.ReturnFridge(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      checkout,
		Timestamp: time.Now(),
	})
}

// PatchFridge applies an administrative field patch
// @Summary Patch a fridge
// @Description Updates individual fridge fields. Setting status here bypasses the checkout machinery and is meant for corrections.
// @Tags fridges
// @Accept json
// @Produce json
// @Param id path int true "Fridge ID"
// @Param request body dto.PatchFridgeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Fridge} "Fridge updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Fridge not found"
// @Failure 409 {object} dto.ErrorResponse "Fridge number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/{id} [patch]
func (c *FridgeController) PatchFridge(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PatchFridgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid patch data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fridge, err := c.fridgeService.PatchFridge(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      fridge,
		Timestamp: time.Now(),
	})
}

// DeleteFridge removes a fridge
// @Summary Delete a fridge
// @Description Deletes a fridge that has never been checked out. A fridge with lending history cannot be deleted.
// @Tags fridges
// @Produce json
// @Param id path int true "Fridge ID"
// @Success 204 "Fridge deleted"
// @Failure 400 {object} dto.ErrorResponse "Fridge has checkout history"
// @Failure 404 {object} dto.ErrorResponse "Fridge not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fridges/{id} [delete]
func (c *FridgeController) DeleteFridge(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.fridgeService.DeleteFridge(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
