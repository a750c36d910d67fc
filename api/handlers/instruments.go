package handlers

import (
	"net/http"

	"microblog/services"

	"github.com/gin-gonic/gin"
)

type InstrumentHandler struct {
	instruments *services.InstrumentService
}

func NewInstrumentHandler(instruments *services.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instruments: instruments}
}

// Attach привязывает инструмент к текущему пользователю,
// создавая инструмент при необходимости
func (h *InstrumentHandler) Attach(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	instrument, err := h.instruments.GetOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.instruments.AttachToUser(c.Request.Context(), userID.(int64), instrument.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, instrument)
}

// List возвращает инструменты текущего пользователя
func (h *InstrumentHandler) List(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	names, err := h.instruments.GetUserInstrumentNames(c.Request.Context(), userID.(int64))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instruments": names})
}
