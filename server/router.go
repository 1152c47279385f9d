package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"social-dashboard/domain/repository"
	httpHandler "social-dashboard/interfaces/http"
	"social-dashboard/interfaces/middleware"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	linkHandler httpHandler.ILinkHandler,
	companyHandler httpHandler.ICompanyHandler,
	statsHandler httpHandler.IStatsHandler,
	mondayHandler httpHandler.IMondayHandler,
	healthHandler httpHandler.IHealthHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:4201", "https://localhost:4200", "https://localhost:4201"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", healthHandler.Health)

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	links := api.Group("/links")
	{
		links.POST("", linkHandler.AddLink)
		links.GET("", linkHandler.ListLinks)
		links.GET("/:linkId", linkHandler.GetLink)
		links.POST("/:linkId/refresh", linkHandler.RefreshLink)
		links.POST("/refresh", linkHandler.RefreshAll)
		links.DELETE("/:linkId", linkHandler.DeleteLink)
	}

	companies := api.Group("/companies")
	{
		companies.POST("", companyHandler.Create)
		companies.GET("", companyHandler.List)
		companies.DELETE("/:companyId", companyHandler.Delete)
		companies.GET("/:companyId/stats", statsHandler.CompanyStats)
		companies.GET("/:companyId/monday", mondayHandler.GetConnection)
	}

	stats := api.Group("/stats")
	{
		stats.GET("/platforms", statsHandler.PlatformPerformance)
		stats.GET("/engagement", statsHandler.EngagementReport)
	}

	monday := api.Group("/monday")
	{
		monday.POST("/verify", mondayHandler.VerifyToken)
		monday.POST("/workspaces", mondayHandler.ListWorkspaces)
		monday.POST("/boards", mondayHandler.ListBoards)
		monday.POST("/columns", mondayHandler.ListColumns)
		monday.POST("/connect", mondayHandler.Connect)
	}

	return router
}
