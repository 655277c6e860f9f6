package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/middleware"
)

// TeacherController handles teacher account endpoints
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// GetTeachers lists teacher accounts
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {object} dto.TeacherListResponse "Teachers"
// @Router /teachers [get]
func (c *TeacherController) GetTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.GetAllTeachers(ctx, middleware.PrincipalFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list := make([]dto.UserInfo, 0, len(teachers))
	for _, t := range teachers {
		list = append(list, *dto.FromUser(t))
	}
	ctx.JSON(http.StatusOK, dto.TeacherListResponse{Success: true, Teachers: list, Count: len(list)})
}

// UpdateTeacher modifies a teacher account
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body dto.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} dto.MessageResponse "Teacher updated"
// @Failure 403 {object} dto.MessageResponse "Permission denied"
// @Failure 404 {object} dto.MessageResponse "Teacher not found"
// @Router /teachers [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	user, err := c.teacherService.UpdateTeacher(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Teacher updated successfully",
		"teacher": dto.FromUser(user),
	})
}

// DeleteTeacher removes a teacher account
// @Summary Delete a teacher
// @Tags teachers
// @Produce json
// @Param id query int true "Teacher ID"
// @Success 200 {object} dto.MessageResponse "Teacher deleted"
// @Failure 404 {object} dto.MessageResponse "Teacher not found"
// @Router /teachers [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Teacher ID is required"))
		return
	}

	if err := c.teacherService.DeleteTeacher(ctx, middleware.PrincipalFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Teacher deleted successfully"))
}
