package handlers

import (
	"errors"
	"net/http"

	"microblog/models"
	"microblog/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Login       string   `json:"login" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Country     string   `json:"country"`
	Instruments []string `json:"instruments"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	users       *services.UserService
	instruments *services.InstrumentService
}

func NewAuthHandler(users *services.UserService, instruments *services.InstrumentService) *AuthHandler {
	return &AuthHandler{users: users, instruments: instruments}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	newUser := models.User{
		Login:     req.Login,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
	}

	userID, err := h.users.Register(c.Request.Context(), &newUser)
	if err != nil {
		if err.Error() == "user already exists" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, name := range req.Instruments {
		instrument, err := h.instruments.GetOrCreate(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instrument"})
			return
		}
		if err := h.instruments.AttachToUser(c.Request.Context(), userID, instrument.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach instrument"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": userID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || err.Error() == "invalid password" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"login":   req.Login,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.users.Logout(c.Request.Context(), userID.(int64)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
