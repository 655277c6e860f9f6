package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/middleware"
)

// AssistantController handles the registration assistant endpoint
type AssistantController struct {
	assistantService services.AssistantService
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistantService services.AssistantService) *AssistantController {
	return &AssistantController{assistantService: assistantService}
}

// Chat relays a conversation turn to the assistant
// @Summary Talk to the registration assistant
// @Description Sends the message and history to the model; when registration data is complete the response carries extractedData
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.AssistantRequest true "Message, history and optional action"
// @Success 200 {object} dto.AssistantResponse "Assistant reply"
// @Failure 400 {object} dto.MessageResponse "Message is required"
// @Failure 503 {object} dto.MessageResponse "Assistant unavailable"
// @Router /ai-assistant [post]
func (c *AssistantController) Chat(ctx *gin.Context) {
	var req dto.AssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	resp, err := c.assistantService.Chat(ctx, middleware.PrincipalFromContext(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
