package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-admin/internal/authprovider"
	"quiz-admin/internal/config"
	"quiz-admin/internal/docstore"
	"quiz-admin/internal/handler"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/middleware"
	"quiz-admin/internal/repository"
	"quiz-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to the document store
	redisClient, err := docstore.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	store := docstore.NewRedisDocumentStore(redisClient)

	// Auth provider and repositories
	provider := authprovider.NewLocalProvider(store)
	userRepository := repository.NewUserRepository(store)
	quizRepository := repository.NewQuizRepository(store)
	resultRepository := repository.NewResultRepository(store)

	// Initialize services
	authService, err := service.NewAuthService(provider, userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, provider)
	quizService := service.NewQuizService(quizRepository)
	resultService := service.NewResultService(resultRepository, quizRepository, userRepository)
	migrationService := service.NewMigrationService(userRepository)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService, authService)
	quizHandler := handler.NewQuizHandler(quizService)
	resultHandler := handler.NewResultHandler(resultService)
	migrationHandler := handler.NewMigrationHandler(migrationService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	authGroup.Post("/mobile/validate", authHandler.ValidateMobileLogin)
	authGroup.Get("/profile", authHandler.GetProfile)

	// User management (admin only)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService), middleware.AdminOnly(authService))
	userGroup.Get("/", userHandler.ListUsers)
	userGroup.Post("/", userHandler.CreateUser)
	userGroup.Put("/:id", userHandler.UpdateUser)
	userGroup.Delete("/:id", userHandler.DeleteUser)

	// Quizzes (admin only)
	quizGroup := apiGroup.Group("/quizzes", middleware.Protected(authService), middleware.AdminOnly(authService))
	quizGroup.Get("/", quizHandler.ListQuizzes)
	quizGroup.Post("/", quizHandler.CreateQuiz)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Put("/:id", quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", quizHandler.DeleteQuiz)

	// Results: submission is open to any signed-in user, the rest is admin
	resultGroup := apiGroup.Group("/results", middleware.Protected(authService))
	resultGroup.Post("/", resultHandler.SubmitResult)
	resultGroup.Get("/", middleware.AdminOnly(authService), resultHandler.ListResults)
	resultGroup.Delete("/:id", middleware.AdminOnly(authService), resultHandler.DeleteResult)

	// Consistency repair (admin only)
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.AdminOnly(authService))
	adminGroup.Get("/migration/check", migrationHandler.Check)
	adminGroup.Post("/migration/run", migrationHandler.Run)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
