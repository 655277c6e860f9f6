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

// AttendanceController handles attendance endpoints
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// GetAttendance lists attendance records matching the query filters
// @Summary List attendance records
// @Description Filters by classId, studentId, date (YYYY-MM-DD) and status
// @Tags attendance
// @Produce json
// @Param classId query int false "Class ID"
// @Param studentId query int false "Student ID"
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param status query string false "Attendance status"
// @Success 200 {object} dto.AttendanceListResponse "Attendance records"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Router /attendance [get]
func (c *AttendanceController) GetAttendance(ctx *gin.Context) {
	q := services.ListAttendanceQuery{
		Date:   ctx.Query("date"),
		Status: ctx.Query("status"),
	}
	if v := ctx.Query("classId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid class ID"))
			return
		}
		q.ClassID = id
	}
	if v := ctx.Query("studentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid student ID"))
			return
		}
		q.StudentID = id
	}

	records, err := c.attendanceService.ListAttendance(ctx, middleware.PrincipalFromContext(ctx), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list := make([]models.Attendance, 0, len(records))
	for _, r := range records {
		list = append(list, *r)
	}
	ctx.JSON(http.StatusOK, dto.AttendanceListResponse{Success: true, Attendance: list, Count: len(list)})
}

// MarkAttendance upserts the record for a student, class and day
// @Summary Mark attendance
// @Description Creates the day's record or overwrites an existing one; 201 on create, 200 on overwrite
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Attendance information"
// @Success 200 {object} dto.AttendanceResponse "Attendance updated"
// @Success 201 {object} dto.AttendanceResponse "Attendance recorded"
// @Failure 400 {object} dto.MessageResponse "Missing required fields"
// @Router /attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	record, created, err := c.attendanceService.MarkAttendance(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	message := "Attendance updated"
	if created {
		status = http.StatusCreated
		message = "Attendance recorded"
	}
	ctx.JSON(status, dto.AttendanceResponse{
		Success:    true,
		Message:    message,
		Attendance: record,
	})
}

// UpdateAttendance changes status or notes of a record
// @Summary Update an attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} dto.AttendanceResponse "Attendance updated"
// @Failure 404 {object} dto.MessageResponse "Attendance record not found"
// @Router /attendance [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	record, err := c.attendanceService.UpdateAttendance(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AttendanceResponse{
		Success:    true,
		Message:    "Attendance updated",
		Attendance: record,
	})
}

// DeleteAttendance removes a record
// @Summary Delete an attendance record
// @Tags attendance
// @Produce json
// @Param id query int true "Attendance ID"
// @Success 200 {object} dto.MessageResponse "Attendance deleted"
// @Failure 404 {object} dto.MessageResponse "Attendance record not found"
// @Router /attendance [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Attendance ID is required"))
		return
	}

	if err := c.attendanceService.DeleteAttendance(ctx, middleware.PrincipalFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Attendance deleted"))
}
