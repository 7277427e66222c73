// Package main is the entry point for the facilitycheck API server.
// It wires configuration, the database pool, migrations, seeding, and all
// HTTP routes.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/avissapr/facilitycheck/internal/config"
	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/handlers"
	"github.com/avissapr/facilitycheck/internal/middleware"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/avissapr/facilitycheck/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	securityConfig := security.DefaultSecurityConfig()
	securityLogger := security.NewLogger()

	// Database pool and schema
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Password strategy is chosen once here; everything downstream is
	// mode-agnostic.
	verifier := security.VerifierForMode(cfg.PasswordMode, securityConfig)

	if cfg.SeedUsers {
		if err := services.SeedDefaultUsers(context.Background(), verifier, securityLogger); err != nil {
			log.Fatalf("Failed to seed default users: %v", err)
		}
	}

	fileStore, err := storage.NewFileStore(cfg.UploadDir, int64(securityConfig.MaxUploadSize))
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "facilitycheck",
		// Leave headroom above the upload cap for multipart framing, so the
		// store's own size check is the one that answers oversized uploads.
		BodyLimit: securityConfig.MaxUploadSize + 1024*1024,
		// All handler errors funnel through here: fiber errors keep their
		// code and message, anything else is a plain 500. Messages are the
		// caller-facing contract, so they pass through unwrapped.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				message = fe.Message
			} else {
				securityLogger.Error("Unhandled request error", err)
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-User-Id",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(securityLogger))
	app.Use(middleware.ActorContext())

	// Handlers
	authHandler := handlers.NewAuthHandler(services.NewAuthService(verifier), securityLogger)
	userHandler := handlers.NewUserHandler(services.NewUserService(verifier), securityLogger)
	checklistHandler := handlers.NewChecklistHandler(services.NewChecklistService())
	inspectionHandler := handlers.NewInspectionHandler(services.NewInspectionService())
	resultHandler := handlers.NewResultHandler()
	fileHandler := handlers.NewFileHandler(fileStore, securityLogger)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/role", userHandler.ChangeRole)
	users.Put("/:id/enabled", userHandler.SetEnabled)
	users.Delete("/:id", userHandler.Delete)

	checklists := api.Group("/checklists")
	checklists.Get("/", checklistHandler.List)
	checklists.Post("/", checklistHandler.Create)
	// Item routes by item ID come before /:id so "items" is not parsed as a
	// checklist ID.
	checklists.Put("/items/:itemId", checklistHandler.UpdateItem)
	checklists.Delete("/items/:itemId", checklistHandler.DeleteItem)
	checklists.Get("/:id", checklistHandler.Get)
	checklists.Put("/:id", checklistHandler.Update)
	checklists.Delete("/:id", checklistHandler.Delete)
	checklists.Get("/:id/items", checklistHandler.ListItems)
	checklists.Post("/:id/items", checklistHandler.AddItem)

	inspections := api.Group("/inspections")
	inspections.Get("/", inspectionHandler.List)
	inspections.Post("/", inspectionHandler.Create)
	inspections.Get("/statistics", inspectionHandler.Statistics)
	inspections.Get("/status/:status", inspectionHandler.ListByStatus)
	inspections.Get("/:id", inspectionHandler.Get)
	inspections.Put("/:id", inspectionHandler.Update)
	inspections.Put("/:id/status", inspectionHandler.SetStatus)
	inspections.Delete("/:id", inspectionHandler.Delete)

	results := api.Group("/results")
	results.Get("/inspection/:inspectionId", resultHandler.ListByInspection)
	results.Post("/inspection/:inspectionId", resultHandler.Create)
	results.Put("/:id", resultHandler.Update)
	results.Delete("/:id", resultHandler.Delete)

	files := api.Group("/files")
	files.Post("/upload", fileHandler.Upload)
	files.Get("/:filename", fileHandler.Download)

	securityLogger.Info("facilitycheck listening on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
