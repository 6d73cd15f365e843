package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// chatFallback is returned verbatim whenever the upstream call fails, so the
// client always has text to render.
const chatFallback = "Failed to fetch AI response."

// ChatService answers free-text nutrition questions.
type ChatService interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

type AIHandler struct {
	chat ChatService
}

func NewAIHandler(chat ChatService) *AIHandler {
	return &AIHandler{chat: chat}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ai/chat", h.Chat)
}

func (h *AIHandler) Chat(c *gin.Context) {
	if _, exists := c.Get("user_id"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text, err := h.chat.Chat(c.Request.Context(), req.Prompt)
	if err != nil {
		log.Printf("[AI] chat request failed: %v", err)
		c.JSON(http.StatusOK, ChatResponse{Text: chatFallback})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Text: text})
}
