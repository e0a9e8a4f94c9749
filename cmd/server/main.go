package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/config"
	"github.com/projecthub/project-tracking-api/internal/database"
	"github.com/projecthub/project-tracking-api/internal/handlers"
	"github.com/projecthub/project-tracking-api/internal/middleware"
	"github.com/projecthub/project-tracking-api/internal/repository"
	"github.com/projecthub/project-tracking-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RequestID())

	// Initialize repositories
	db := database.GetDB()
	projectRepo := repository.NewProjectRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	statusRepo := repository.NewStatusUpdateRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize services
	allocationService := services.NewAllocationService(resourceRepo)
	projectService := services.NewProjectService(projectRepo, resourceRepo, milestoneRepo, statusRepo)
	resourceService := services.NewResourceService(resourceRepo, projectRepo, allocationService)
	milestoneService := services.NewMilestoneService(milestoneRepo, projectRepo)
	utilizationService := services.NewUtilizationService(snapshotRepo, resourceRepo)
	reportService := services.NewReportService(projectRepo, resourceRepo, statusRepo, allocationService)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	resourceHandler := handlers.NewResourceHandler(resourceService, allocationService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	utilizationHandler := handlers.NewUtilizationHandler(utilizationService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Tracking API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectID(), projectHandler.GetProject)
			projects.PATCH("/:id", middleware.RequireProjectID(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectID(), projectHandler.DeleteProject)
			projects.POST("/:id/archive", middleware.RequireProjectID(), projectHandler.ArchiveProject)
			projects.POST("/:id/duplicate", middleware.RequireProjectID(), projectHandler.DuplicateProject)
			projects.GET("/:id/status-updates", middleware.RequireProjectID(), projectHandler.ListStatusUpdates)
			projects.POST("/:id/status-updates", middleware.RequireProjectID(), projectHandler.CreateStatusUpdate)
		}

		resources := api.Group("/resources")
		{
			resources.GET("", resourceHandler.ListResources)
			resources.POST("", resourceHandler.CreateResource)
			resources.GET("/allocation", resourceHandler.GetAllocationSummaries)
			resources.GET("/:id", resourceHandler.GetResource)
			resources.PATCH("/:id", resourceHandler.UpdateResource)
			resources.DELETE("/:id", resourceHandler.DeleteResource)
		}

		milestones := api.Group("/milestones")
		{
			milestones.GET("", milestoneHandler.ListMilestones)
			milestones.POST("", milestoneHandler.CreateMilestone)
			milestones.GET("/:id", milestoneHandler.GetMilestone)
			milestones.PATCH("/:id", milestoneHandler.UpdateMilestone)
			milestones.DELETE("/:id", milestoneHandler.DeleteMilestone)
		}

		utilization := api.Group("/utilization")
		{
			utilization.GET("/weekly", utilizationHandler.GetWeeklyUtilization)
			utilization.POST("/weekly", utilizationHandler.CaptureWeeklyUtilization)
		}

		api.GET("/dashboard/stats", dashboardHandler.GetStats)
		api.GET("/reports/projects", reportHandler.GetProjectReport)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
