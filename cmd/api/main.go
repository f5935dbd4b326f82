package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/sefazor/nearmeet-backend/internal/config"
	"github.com/sefazor/nearmeet-backend/internal/handler"
	"github.com/sefazor/nearmeet-backend/internal/middleware"
	"github.com/sefazor/nearmeet-backend/internal/repository"
	"github.com/sefazor/nearmeet-backend/internal/service"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/database"
	"github.com/sefazor/nearmeet-backend/pkg/email"
	"github.com/sefazor/nearmeet-backend/pkg/logger"
	"github.com/sefazor/nearmeet-backend/pkg/storage"
	"github.com/sefazor/nearmeet-backend/pkg/token"
	"github.com/sefazor/nearmeet-backend/pkg/utils"
)

func main() {
	// Load .env (optional outside local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)

	// Token manager
	tokenManager := token.NewManager(cfg.JWTSecret)

	// Email service
	emailService := email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, zapLogger)

	// Photo storage
	photoStorage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage: ", err)
	}

	// Services
	authService := service.NewAuthService(userRepo, emailService, tokenManager, zapLogger)
	userService := service.NewUserService(userRepo, photoStorage, zapLogger)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)

	// Router
	app := fiber.New(fiber.Config{
		ErrorHandler: apperror.NewErrorHandler(zapLogger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)

	// Protected routes
	api.Use(middleware.AuthMiddleware(tokenManager, authService, zapLogger))
	{
		users := api.Group("/users")
		users.Get("/me", userHandler.GetMe)
		users.Put("/me", userHandler.UpdateMe)
		users.Post("/me/photos", userHandler.UploadPhoto)
		users.Get("/nearby", userHandler.GetNearby)
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
