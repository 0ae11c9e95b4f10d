package controllers

import (
	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type ChatController struct {
	sessions services.SessionServiceInterface
}

func NewChatController(sessions services.SessionServiceInterface) *ChatController {
	return &ChatController{sessions: sessions}
}

func (cc *ChatController) GetChat(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	utils.RespondSuccess(c, response_models.ChatResponse{Messages: sess.ChatLog()}, "Chat fetched successfully")
}

// PostMessage returns only the messages this call appended.
func (cc *ChatController) PostMessage(c *gin.Context) {
	sess, ok := loadSession(c, cc.sessions)
	if !ok {
		return
	}
	var req request_models.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	msgs, err := sess.PostUserMessage(c.Request.Context(), req.Text)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ChatResponse{Messages: msgs}, "Message posted")
}
