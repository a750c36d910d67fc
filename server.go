package main

import (
	"flag"
	"fmt"

	"microblog/api/handlers"
	"microblog/api/middleware"
	"microblog/api/routes"
	"microblog/config"
	"microblog/db"
	"microblog/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(config.AppConfig.Logs.Level); err == nil {
		log.SetLevel(level)
	}
	log.Info("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := services.InitRedis(); err != nil {
		// Без Redis токены резолвятся через БД
		log.WithError(err).Warn("Redis is not available, token cache disabled")
	}

	userService := services.NewUserService(db.ORM)
	instrumentService := services.NewInstrumentService(db.ORM)
	subscriptionService := services.NewSubscriptionService(db.ORM)
	likeService := services.NewLikeService(db.ORM)
	messageRepo := services.NewGormMessageRepository(db.ORM)
	feedService := services.NewFeedService(messageRepo, log)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("microblog"))

	routes.PublicApi(router, routes.Handlers{
		Auth:          handlers.NewAuthHandler(userService, instrumentService),
		Users:         handlers.NewUserHandler(userService),
		Feed:          handlers.NewFeedHandler(feedService, userService, instrumentService),
		Messages:      handlers.NewMessageHandler(messageRepo),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptionService),
		Instruments:   handlers.NewInstrumentHandler(instrumentService),
		Likes:         handlers.NewLikeHandler(likeService),
		UserService:   userService,
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
