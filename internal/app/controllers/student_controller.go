package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkaplan/schoolpanel/internal/app/models/dto"
	"github.com/mkaplan/schoolpanel/internal/app/services"
	"github.com/mkaplan/schoolpanel/internal/middleware"
)

// StudentController handles roster operations
type StudentController struct {
	rosterService services.RosterService
}

// NewStudentController creates a new StudentController
func NewStudentController(rosterService services.RosterService) *StudentController {
	return &StudentController{
		rosterService: rosterService,
	}
}

// ListStudents lists the roster
// @Summary List students
// @Description Retrieves all student records in creation order
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentRecord} "Students retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.rosterService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// GetStudent retrieves a student record
// @Summary Get student details
// @Description Retrieves a single student record by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Student retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.rosterService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, ""))
}

// AddStudent creates a student record
// @Summary Add a student
// @Description Creates a student record; the marksheet reference starts empty
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student fields"
// @Success 201 {object} dto.APIResponse{data=models.StudentRecord} "Student added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.rosterService.Add(ctx, services.StudentFields{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Grade:   req.Grade,
		Marks:   req.Marks,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student, "Student added"))
}

// UpdateStudent updates a student record, optionally replacing its marksheet
// @Summary Update a student
// @Description Replaces all fields; the marksheet file is replaced only when a new one is uploaded
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param name formData string true "Student name"
// @Param address formData string true "Address"
// @Param phone formData string true "Phone"
// @Param grade formData string true "Grade"
// @Param marks formData int true "Marks"
// @Param marksheet formData file false "Replacement marksheet file"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// Attachment is optional; absence keeps the existing marksheet
	attachment, err := ctx.FormFile("marksheet")
	if err != nil && err != http.ErrMissingFile {
		attachment = nil
	}

	student, err := c.rosterService.Update(ctx, id, services.StudentFields{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Grade:   req.Grade,
		Marks:   req.Marks,
	}, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student updated"))
}

// DeleteStudent deletes a student record
// @Summary Delete a student
// @Description Removes a student record; its attachment file is left in place
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	if err := c.rosterService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student deleted"))
}

// Dashboard returns roster counters
// @Summary Dashboard counters
// @Description Returns the total number of student records
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Counters retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	count, err := c.rosterService.Count(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardResponse{TotalStudents: count}, ""))
}

// parseStudentID reads the :id path parameter, writing the error response on
// failure
func parseStudentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
