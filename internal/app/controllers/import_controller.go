package controllers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/middleware"
)

// ImportController handles donor CSV ingestion
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// openCSVFile pulls the uploaded "file" part out of the multipart form,
// writing the error response itself on failure. The caller must close the
// returned reader.
func openCSVFile(ctx *gin.Context) (multipart.File, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing CSV file")
		errorDetail = errorDetail.WithDetails("a multipart field named 'file' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unreadable CSV file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return file, true
}

// ImportDonors ingests a donor CSV
// @Summary Import donors from CSV
// @Description Detects the spreadsheet layout from the header row and resolves each data row through donor find-or-create. Re-importing the same sheet is harmless.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Donor CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing or unparseable CSV"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /import/donors [post]
func (c *ImportController) ImportDonors(ctx *gin.Context) {
	file, ok := openCSVFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	result, err := c.importService.ImportDonors(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// PreviewDonors dry-runs a donor CSV
// @Summary Preview a donor CSV import
// @Description Reports what an import would do with each row without writing anything
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Donor CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportPreviewResult} "Preview computed"
// @Failure 400 {object} dto.ErrorResponse "Missing or unparseable CSV"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /import/donors/preview [post]
func (c *ImportController) PreviewDonors(ctx *gin.Context) {
	file, ok := openCSVFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := c.importService.PreviewDonors(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      preview,
		Timestamp: time.Now(),
	})
}
