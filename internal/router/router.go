package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/internal/api"
	"github.com/pageza/recipegen/backend/internal/middleware"
)

// maxBodySize bounds JSON bodies and avatar uploads alike.
const maxBodySize = 6 << 20

// Handlers bundles everything the route table needs.
type Handlers struct {
	Health   *api.HealthHandler
	LLM      *api.LLMHandler
	Recipe   *api.RecipeHandler
	Feedback *api.FeedbackHandler
	Avatar   *api.AvatarHandler
}

// Options configures the middleware chain. GenerateLimiter may be nil.
type Options struct {
	CORSOrigins     []string
	Tokens          middleware.TokenValidator
	GenerateLimiter *middleware.RateLimiter
	Log             *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(requestid.New())
	router.Use(middleware.Recovery(opts.Log))
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	router.Use(middleware.BodySizeLimit(maxBodySize, opts.Log))

	router.GET("/health", h.Health.Health)
	router.GET("/api/health", h.Health.Health)

	auth := middleware.AuthMiddleware(opts.Tokens)
	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{auth}
		if opts.GenerateLimiter != nil {
			chain = append(chain, opts.GenerateLimiter.Middleware())
		}
		return append(chain, handler)
	}

	v1 := router.Group("/api/v1")

	llm := v1.Group("/llm")
	{
		llm.POST("/generate", limited(h.LLM.Generate)...)
		llm.POST("/parse", h.LLM.Parse)
		llm.GET("/drafts/:id", auth, h.LLM.GetDraft)
		llm.DELETE("/drafts/:id", auth, h.LLM.DeleteDraft)
		llm.POST("/drafts/:id/modify", limited(h.LLM.Modify)...)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", h.Recipe.ListRecipes)
		recipes.GET("/:id", h.Recipe.GetRecipe)
		recipes.POST("", auth, h.Recipe.CreateRecipe)
		recipes.DELETE("/:id", auth, h.Recipe.DeleteRecipe)
	}

	v1.POST("/profile/avatar", auth, h.Avatar.UploadAvatar)

	feedback := v1.Group("/feedback")
	{
		feedback.POST("", middleware.OptionalAuth(opts.Tokens), h.Feedback.CreateFeedback)

		admin := feedback.Group("", auth, middleware.RequireAdmin())
		admin.GET("", h.Feedback.ListFeedback)
		admin.GET("/:id", h.Feedback.GetFeedback)
		admin.PUT("/:id/status", h.Feedback.UpdateStatus)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
