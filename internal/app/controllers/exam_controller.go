package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/middleware"
	"github.com/alijimale/institute-backend/internal/pkg/logger"
)

// ExamController handles exam upload, download and review endpoints
type ExamController struct {
	examService services.ExamService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// GetExams lists exams visible to the caller
// @Summary List exams
// @Description Admins and managers see all uploads, teachers only their own
// @Tags exams
// @Produce json
// @Success 200 {object} dto.ExamListResponse "Exams"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Router /exams [get]
func (c *ExamController) GetExams(ctx *gin.Context) {
	exams, err := c.examService.ListExams(ctx, middleware.PrincipalFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list := make([]models.Exam, 0, len(exams))
	for _, e := range exams {
		list = append(list, *e)
	}
	ctx.JSON(http.StatusOK, dto.ExamListResponse{Success: true, Exams: list})
}

// UploadExam stores an exam document
// @Summary Upload an exam
// @Description Accepts a multipart form with title, description and file
// @Tags exams
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Exam title"
// @Param description formData string false "Description"
// @Param file formData file true "Exam document"
// @Success 201 {object} dto.ExamResponse "Exam uploaded"
// @Failure 400 {object} dto.MessageResponse "Missing title or file"
// @Router /exams [post]
func (c *ExamController) UploadExam(ctx *gin.Context) {
	title := ctx.PostForm("title")
	description := ctx.PostForm("description")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Exam file is required"))
		return
	}

	exam, err := c.examService.UploadExam(ctx, middleware.PrincipalFromContext(ctx), title, description, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ExamResponse{
		Success: true,
		Message: "Exam uploaded successfully",
		Exam:    exam,
	})
}

// DownloadExam streams a stored exam document. The route is public; the
// unguessable file id is what gates access.
// @Summary Download an exam file
// @Tags exams
// @Produce octet-stream
// @Param fileId path string true "File ID"
// @Success 200 {file} binary "File content"
// @Failure 404 {object} dto.MessageResponse "File not found"
// @Router /exams/download/{fileId} [get]
func (c *ExamController) DownloadExam(ctx *gin.Context) {
	fileID := ctx.Param("fileId")

	info, err := c.examService.StatExamFile(ctx, fileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	ctx.Header("Content-Type", info.ContentType)
	ctx.Header("Content-Length", strconv.FormatInt(info.Length, 10))
	ctx.Status(http.StatusOK)

	if err := c.examService.StreamExamFile(ctx, fileID, ctx.Writer); err != nil {
		// Headers are already out, so the response cannot be rewritten.
		logger.Error().Err(err).Str("fileId", fileID).Msg("Exam download truncated mid-stream")
		ctx.Abort()
	}
}

// UpdateExamStatus moves an exam through review
// @Summary Update exam status
// @Tags exams
// @Accept json
// @Produce json
// @Success 200 {object} dto.ExamResponse "Exam updated"
// @Failure 403 {object} dto.MessageResponse "Permission denied"
// @Router /exams [put]
func (c *ExamController) UpdateExamStatus(ctx *gin.Context) {
	var req struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	exam, err := c.examService.UpdateExamStatus(ctx, middleware.PrincipalFromContext(ctx), req.ID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExamResponse{
		Success: true,
		Message: "Exam status updated",
		Exam:    exam,
	})
}

// DeleteExam removes an exam and its stored file
// @Summary Delete an exam
// @Description Removes the metadata record; blob cleanup is best effort and reported in blobDeleted
// @Tags exams
// @Produce json
// @Param id query int true "Exam ID"
// @Success 200 {object} dto.ExamDeleteResponse "Exam deleted"
// @Failure 403 {object} dto.MessageResponse "Permission denied"
// @Failure 404 {object} dto.MessageResponse "Exam not found"
// @Router /exams [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Exam ID is required"))
		return
	}

	result, err := c.examService.DeleteExam(ctx, middleware.PrincipalFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExamDeleteResponse{
		Success:     true,
		Message:     "Exam deleted successfully",
		BlobDeleted: result.BlobDeleted,
	})
}
