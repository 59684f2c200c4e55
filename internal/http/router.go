package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "sparetime/internal/config"
	h "sparetime/internal/http/handlers"
	"sparetime/internal/http/middleware"
	"sparetime/internal/recs"
	"sparetime/internal/repositories"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID", "duration", "videoId"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	recsClient := recs.New(env.RecsBaseURL, env.RecsTimeout)
	queueRepo := repositories.QueueRepository{}
	userRepo := repositories.UserRepository{}

	authHandler := h.AuthHandler{Secret: secret, Users: userRepo}
	sessionHandler := h.SessionHandler{Recs: recsClient, Queue: queueRepo}
	queueHandler := h.QueueHandler{Recs: recsClient, Queue: queueRepo}
	videoHandler := h.VideoHandler{Recs: recsClient}
	userHandler := h.UserHandler{Users: userRepo}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)

		// Everything below requires a verified bearer token; handlers read
		// the identity only from the request context the middleware filled.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(secret))

		// Session
		session := authed.Group("/session")
		session.GET("/top3", sessionHandler.Top3)

		// Pending-review queue
		queue := authed.Group("/queue")
		queue.GET("", queueHandler.List)
		queue.POST("/add", queueHandler.Add)
		queue.POST("/remove", queueHandler.Remove)
		queue.POST("/rate", queueHandler.Rate)
		queue.GET("/export", queueHandler.Export)

		// Video metadata
		authed.GET("/video-info", videoHandler.Info)

		// User profile
		user := authed.Group("/user")
		user.GET("", userHandler.Get)
		user.PUT("", userHandler.Update)
		user.POST("/interests", userHandler.AddInterest)
		user.DELETE("/interests", userHandler.RemoveInterest)
		user.PUT("/password", userHandler.ChangePassword)
		user.GET("/recommendation-profile", userHandler.RecommendationProfile)
	}

	return r
}
