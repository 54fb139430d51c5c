package v1

import (
	"net/http"
	"time"

	"go-autofiller-backend/config"
	"go-autofiller-backend/internal/delivery/http/middleware"
	"go-autofiller-backend/internal/domain"
	"go-autofiller-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const ServiceName = "Job Autofiller API"

type RouterDeps struct {
	ProfileUC domain.ProfileUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": ServiceName + " is running!",
			"version": deps.Config.Version,
		})
	})

	api := r.Group("/api")

	// Health never touches the store
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	saveLimiter := middleware.RateLimitMiddleware(middleware.SaveRateLimitConfig(
		deps.Config.RateLimitSaveThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))
	NewProfileHandler(api, deps.ProfileUC, saveLimiter)

	return r
}
