package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/middleware"
)

// DonorController handles donor operations
type DonorController struct {
	donorService *services.DonorService
}

// NewDonorController creates a new DonorController
func NewDonorController(donorService *services.DonorService) *DonorController {
	return &DonorController{
		donorService: donorService,
	}
}

// CreateDonor registers a donor
// @Summary Create a donor
// @Description Registers a donor directly. Email is the identity key; a duplicate is a conflict.
// @Tags donors
// @Accept json
// @Produce json
// @Param request body dto.CreateDonorRequest true "Donor information"
// @Success 201 {object} dto.APIResponse{data=models.Donor} "Donor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Donor email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /donors [post]
func (c *DonorController) CreateDonor(ctx *gin.Context) {
	var req dto.CreateDonorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid donor data")
		errorDetail = errorDetail.WithDetails(middleware.FormatBindingError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	donor, err := c.donorService.CreateDonor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      donor,
		Timestamp: time.Now(),
	})
}

// SearchDonors finds donors by name or email
// @Summary Search donors
// @Description Finds donors whose name or email contains the query, case-insensitively
// @Tags donors
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} dto.APIResponse{data=[]models.Donor} "Donors retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /donors/search [get]
func (c *DonorController) SearchDonors(ctx *gin.Context) {
	donors, err := c.donorService.SearchDonors(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      donors,
		Timestamp: time.Now(),
	})
}

// GetDonorByID retrieves a donor
// @Summary Get donor by ID
// @Description Retrieves a donor with their donation count
// @Tags donors
// @Produce json
// @Param id path int true "Donor ID"
// @Success 200 {object} dto.APIResponse{data=models.Donor} "Donor retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid donor ID"
// @Failure 404 {object} dto.ErrorResponse "Donor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /donors/{id} [get]
func (c *DonorController) GetDonorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	donor, err := c.donorService.GetDonorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      donor,
		Timestamp: time.Now(),
	})
}
