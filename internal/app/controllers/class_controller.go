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

// ClassController handles class CRUD endpoints
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// GetClasses lists all classes with their assigned teachers
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.ClassListResponse "Classes"
// @Router /classes [get]
func (c *ClassController) GetClasses(ctx *gin.Context) {
	classes, err := c.classService.GetAllClasses(ctx, middleware.PrincipalFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list := make([]models.Class, 0, len(classes))
	for _, cl := range classes {
		list = append(list, *cl)
	}
	ctx.JSON(http.StatusOK, dto.ClassListResponse{Success: true, Classes: list, Count: len(list)})
}

// CreateClass creates a class
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.ClassResponse "Class created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 403 {object} dto.MessageResponse "Permission denied"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	class, err := c.classService.CreateClass(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ClassResponse{
		Success: true,
		Message: "Class created successfully",
		Class:   class,
	})
}

// UpdateClass modifies a class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.UpdateClassRequest true "Fields to update"
// @Success 200 {object} dto.ClassResponse "Class updated"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Router /classes [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	class, err := c.classService.UpdateClass(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ClassResponse{
		Success: true,
		Message: "Class updated successfully",
		Class:   class,
	})
}

// DeleteClass removes a class
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Param id query int true "Class ID"
// @Success 200 {object} dto.MessageResponse "Class deleted"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Router /classes [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Class ID is required"))
		return
	}

	if err := c.classService.DeleteClass(ctx, middleware.PrincipalFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Class deleted successfully"))
}
