package routes

import (
	"microblog/api/handlers"
	"microblog/api/middleware"
	"microblog/services"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Feed          *handlers.FeedHandler
	Messages      *handlers.MessageHandler
	Subscriptions *handlers.SubscriptionHandler
	Instruments   *handlers.InstrumentHandler
	Likes         *handlers.LikeHandler
	UserService   *services.UserService
}

func PublicApi(router *gin.Engine, h Handlers) {
	public := router.Group("/api/v1/")
	{
		public.POST("auth/register", h.Auth.Register)
		public.POST("auth/login", h.Auth.Login)
		public.GET("user/get/:id", h.Users.UserGet)

		// Лента доступна и анонимно - тогда она пустая
		public.GET("feed", middleware.OptionalAuthMiddleware(h.UserService), h.Feed.GetFeed)
	}

	authorized := router.Group("/api/v1/")
	authorized.Use(middleware.AuthMiddleware(h.UserService))
	{
		authorized.POST("auth/logout", h.Auth.Logout)
		authorized.POST("user/update", h.Users.UserUpdate)

		authorized.POST("messages/create", h.Messages.CreateMessage)
		authorized.POST("likes/add", h.Likes.AddLike)

		// Подписки
		authorized.POST("subscriptions/add", h.Subscriptions.Subscribe)
		authorized.POST("subscriptions/delete", h.Subscriptions.Unsubscribe)
		authorized.GET("subscriptions/list", h.Subscriptions.List)

		// Инструменты
		authorized.POST("instruments/attach", h.Instruments.Attach)
		authorized.GET("instruments/list", h.Instruments.List)
	}
}
