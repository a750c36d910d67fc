package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"microblog/models"
	"microblog/services"

	"github.com/gin-gonic/gin"
)

const (
	DEFAULT_FEED_LIMIT = 20
	MAX_FEED_LIMIT     = 100
)

type FeedHandler struct {
	feed        *services.FeedService
	users       *services.UserService
	instruments *services.InstrumentService
}

func NewFeedHandler(feed *services.FeedService, users *services.UserService, instruments *services.InstrumentService) *FeedHandler {
	return &FeedHandler{feed: feed, users: users, instruments: instruments}
}

// GetFeed возвращает страницу ленты. Аутентификация опциональна:
// анонимный запрос получает пустую ленту, а не ошибку
func (h *FeedHandler) GetFeed(c *gin.Context) {
	feedType, err := services.ParseFeedType(c.DefaultQuery("type", string(services.FeedSubscriptions)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed type"})
		return
	}

	limit := DEFAULT_FEED_LIMIT
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}
	if limit > MAX_FEED_LIMIT {
		limit = MAX_FEED_LIMIT
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsed
		}
	}

	emptyFeed := models.FeedResponse{Tweets: []models.Tweet{}, HasMore: false}

	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusOK, emptyFeed)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userIDVal.(int64))
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusOK, emptyFeed)
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, emptyFeed)
		return
	}

	// Для ленты own сводка инструментов считается один раз здесь,
	// а не на каждую строку
	var ownInstruments []string
	if feedType == services.FeedOwn {
		ownInstruments, _ = h.instruments.GetUserInstrumentNames(c.Request.Context(), user.ID)
	}

	tweets := h.feed.GetFeed(c.Request.Context(), user, feedType, ownInstruments, limit, offset)
	c.JSON(http.StatusOK, models.FeedResponse{
		Tweets:  tweets,
		HasMore: len(tweets) == limit,
	})
}
