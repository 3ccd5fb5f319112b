package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/adlift/marketing-ops-backend/internal/database/repository"
	"github.com/adlift/marketing-ops-backend/internal/handlers"
	"github.com/adlift/marketing-ops-backend/internal/middleware"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform/googleads"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform/linkedinads"
)

// SetupRouter configures the Gin router with the campaign lifecycle routes
func SetupRouter(db *gorm.DB, rabbitMQService *services.RabbitMQService, sseHub *services.SSEHub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Wire the platform adapters behind the factory
	platformFactory := adplatform.NewCampaignPlatformFactory(map[models.Platform]adplatform.CampaignPlatformInterface{
		models.PlatformGoogleAds:   googleads.NewAdapter(),
		models.PlatformLinkedInAds: linkedinads.NewAdapter(),
	})

	campaignRepo := repository.NewCampaignRepository(db)
	eventRepo := repository.NewCampaignEventRepository(db)

	lifecycleService := services.NewLifecycleService(campaignRepo, platformFactory)
	notificationService := services.NewNotificationService(eventRepo, sseHub, rabbitMQService)
	dispatcherService := services.NewDispatcherService(lifecycleService, campaignRepo, notificationService)

	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware()

	campaignHandler := handlers.NewCampaignHandler(db, lifecycleService)
	lifecycleHandler := handlers.NewLifecycleHandler(dispatcherService)
	eventStreamHandler := handlers.NewEventStreamHandler(sseHub)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":    "ok",
				"platforms": platformFactory.GetSupportedPlatforms(),
				"time":      time.Now().Format(time.RFC3339),
			})
		})

		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			campaigns := protected.Group("/campaigns")
			{
				campaigns.GET("", campaignHandler.GetCampaigns)
				campaigns.GET("/export", campaignHandler.ExportCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaignByID)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaignContent)
				campaigns.GET("/:id/actions", lifecycleHandler.GetLegalTransitions)
				campaigns.GET("/:id/events", campaignHandler.GetCampaignEvents)
				campaigns.GET("/:id/events/stream", eventStreamHandler.StreamCampaignEvents)
				campaigns.POST("/:id/transitions", lifecycleHandler.RequestTransition)
				campaigns.POST("/transitions/:token/confirm", lifecycleHandler.ConfirmTransition)
			}
		}
	}

	return r
}
