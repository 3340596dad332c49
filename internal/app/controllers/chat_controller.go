package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// ChatController answers questions through the assistant
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat sends a message to the assistant
// @Summary Ask the assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Assistant unavailable"
// @Router /chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reply, err := c.chatService.Reply(ctx.Request.Context(), req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.ChatResponse{Reply: reply}, "")
}
