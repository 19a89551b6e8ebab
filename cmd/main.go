package main

import (
	"log"

	"collab-service/internal/config"
	"collab-service/internal/handlers"
	"collab-service/internal/metrics"
	"collab-service/internal/models"
	"collab-service/internal/repository"
	"collab-service/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	projectService := services.NewProjectService(projectRepo, membershipRepo)
	membershipService := services.NewMembershipService(projectRepo, membershipRepo, userRepo)
	todoService := services.NewTodoService(todoRepo, projectRepo, membershipRepo)
	noteService := services.NewNoteService(noteRepo, projectRepo, membershipRepo)

	app := fiber.New()

	httpMetrics := metrics.NewHTTPMetrics()
	app.Use(httpMetrics.Middleware())

	//Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.SetupRoutes(app, handlers.RouterConfig{
		Users:       userRepo,
		JWTSecret:   cfg.JWTSecret,
		Auth:        handlers.NewAuthHandler(authService),
		Projects:    handlers.NewProjectHandler(projectService, cfg.PageSize),
		Memberships: handlers.NewMembershipHandler(membershipService),
		Todos:       handlers.NewTodoHandler(todoService, cfg.PageSize),
		Notes:       handlers.NewNoteHandler(noteService, cfg.PageSize),
	})

	app.Get("/api/v1/swagger/*", swagger.HandlerDefault)

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Membership{},
		&models.Todo{},
		&models.Note{},
	)
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}
