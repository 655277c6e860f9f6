package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/middleware"
)

// StudentController handles student CRUD endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// GetStudents lists all students
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {object} dto.StudentListResponse "Students"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx, middleware.PrincipalFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list := make([]models.Student, 0, len(students))
	for _, s := range students {
		list = append(list, *s)
	}
	ctx.JSON(http.StatusOK, dto.StudentListResponse{Success: true, Students: list, Count: len(list)})
}

// CreateStudent registers a new student
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.StudentResponse "Student created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 403 {object} dto.MessageResponse "Permission denied"
// @Failure 409 {object} dto.MessageResponse "Student ID already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.StudentResponse{
		Success: true,
		Message: "Student registered successfully",
		Student: student,
	})
}

// UpdateStudent modifies a student record
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse "Student updated"
// @Failure 404 {object} dto.MessageResponse "Student not found"
// @Router /students [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Student updated successfully",
		Student: student,
	})
}

// DeleteStudent removes a student record
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id query int true "Student ID"
// @Success 200 {object} dto.MessageResponse "Student deleted"
// @Failure 404 {object} dto.MessageResponse "Student not found"
// @Router /students [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Student ID is required"))
		return
	}

	if err := c.studentService.DeleteStudent(ctx, middleware.PrincipalFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Student deleted successfully"))
}
