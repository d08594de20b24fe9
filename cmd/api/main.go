package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/logger"
	"backend/pkg/password"
	"backend/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           RBAC Management API
// @version         1.0
// @description     Role-based access control backend managing permissions, roles, accounts and sessions.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer zlog.Sync()

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		zlog.Fatal("Database connection failed", zap.Error(err))
	}
	zlog.Info("Connected to PostgreSQL")

	hasher := password.NewBcryptHasher()

	if err := database.EnsureAdmin(db, hasher, zlog); err != nil {
		zlog.Fatal("Admin seed failed", zap.Error(err))
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	permissionRepo := repository.NewPermissionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	permissionService := service.NewPermissionService(permissionRepo, assignmentRepo, auditRepo, txManager, wsHub)
	roleService := service.NewRoleService(roleRepo, permissionRepo, assignmentRepo, accountRepo, auditRepo, txManager, wsHub)
	accountService := service.NewAccountService(accountRepo, roleRepo, sessionRepo, auditRepo, txManager, hasher, wsHub)
	authService := service.NewAuthService(accountRepo, sessionRepo, auditRepo, txManager, hasher)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	permissionHandler := handler.NewPermissionHandler(permissionService)
	roleHandler := handler.NewRoleHandler(roleService)
	accountHandler := handler.NewAccountHandler(accountService)
	authHandler := handler.NewAuthHandler(authService)
	auditHandler := handler.NewAuditHandler(auditService)

	sessionAuth := middleware.SessionRequired(authService)

	// Set up Gin Router
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, response.Error(http.StatusMethodNotAllowed, handler.MessageInvalidMethod))
	})

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, func(ctx context.Context, token string) (string, error) {
			return authService.Validate(ctx, token)
		})
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	permissionHandler.RegisterRoutes(router.Group(""), sessionAuth)
	roleHandler.RegisterRoutes(router.Group(""), sessionAuth)
	accountHandler.RegisterRoutes(router.Group(""), sessionAuth)
	auditHandler.RegisterRoutes(router.Group(""), sessionAuth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zlog.Info("Server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
