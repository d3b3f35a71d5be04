package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkaplan/schoolpanel/internal/app/models/dto"
	"github.com/mkaplan/schoolpanel/internal/app/services"
	"github.com/mkaplan/schoolpanel/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferController handles bulk spreadsheet import and export
type TransferController struct {
	transferService services.TransferService
}

// NewTransferController creates a new TransferController
func NewTransferController(transferService services.TransferService) *TransferController {
	return &TransferController{
		transferService: transferService,
	}
}

// ImportStudents bulk-creates students from an uploaded spreadsheet
// @Summary Import students
// @Description Creates student records from an xlsx file; bad rows are skipped and reported
// @Tags transfer
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet with columns name, address, phone, grade, marks, marksheet"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReportResponse} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing file or malformed spreadsheet"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students/import [post]
func (c *TransferController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Spreadsheet file is required")
		errorDetail = errorDetail.WithDetails("Upload the file in the 'file' form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not read uploaded file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	report, err := c.transferService.Import(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ImportReportResponse{
		Created: len(report.Created),
		Skipped: len(report.Errors),
	}
	for _, re := range report.Errors {
		resp.Errors = append(resp.Errors, dto.RowError{Row: re.Row, Reason: re.Reason})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, fmt.Sprintf("Imported %d students", resp.Created)))
}

// ExportStudents streams the roster as a spreadsheet download
// @Summary Export students
// @Description Serializes the roster to an xlsx file
// @Tags transfer
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Spreadsheet download"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students/export [get]
func (c *TransferController) ExportStudents(ctx *gin.Context) {
	content, err := c.transferService.Export(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("students_export_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, content)
}
