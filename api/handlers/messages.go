package handlers

import (
	"net/http"
	"time"

	"microblog/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	repo services.MessageRepository
}

func NewMessageHandler(repo services.MessageRepository) *MessageHandler {
	return &MessageHandler{repo: repo}
}

// CreateMessage создает новое сообщение
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	messageID, err := h.repo.CreateMessage(c.Request.Context(), userID.(int64), time.Now(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": messageID})
}
