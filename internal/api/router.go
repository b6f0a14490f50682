package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

const WebhookPath = "/telegram/webhook"

func NewRouter(t *TelegramWebhook) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(requestid.New())
	// Allow CORS for all origins
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Accept", secretHeader},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	router.GET("/", HealthCheck)
	router.POST(WebhookPath, t.TelegramWebhook)

	return router
}
