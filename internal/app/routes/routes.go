package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/app/controllers"
	"github.com/jashanpj/janasampark/internal/app/middleware"
	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/domain/services/container"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
)

// SetupRouter initializes and returns the configured router.
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	r := gin.Default()

	// CORS: cookie-based sessions need a concrete origin echo, not a
	// wildcard, for Access-Control-Allow-Credentials to work.
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	r.Use(middleware.RequestID())
	r.Use(middleware.RouteGate())

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// Swagger documentation route.
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerPageRoutes(r)
	registerRoutes(r, serviceContainer)
	return r
}

// registerPageRoutes registers the browser-facing paths the route gate
// redirects to. The frontend is served separately; these answer with enough
// JSON for a health probe or a lost browser.
func registerPageRoutes(r *gin.Engine) {
	banner := gin.H{"service": "janasampark", "status": "ok"}
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, banner) })
	r.GET("/login", func(c *gin.Context) { c.JSON(http.StatusOK, banner) })
	r.GET("/register", func(c *gin.Context) { c.JSON(http.StatusOK, banner) })
}

// registerRoutes configures all API routes.
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")

	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registers the routes reachable without a session.
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// IP rate limit: 10 requests per second, bursts of 20.
	api.Use(middleware.IPRateLimiter(10, 20))

	// Health check routes.
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))
	api.GET("/debug", controllers.HandleHealthFunc(container, "debug"))

	// Authentication routes.
	authGroup := api.Group("/auth")
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
	authGroup.POST("/register", controllers.HandleAuthFunc(container, "register"))
	authGroup.GET("/me", controllers.HandleAuthFunc(container, "me"))
	authGroup.POST("/logout", controllers.HandleAuthFunc(container, "logout"))
	authGroup.GET("/test", controllers.HandleAuthFunc(container, "test"))
}

// registerAuthenticatedRoutes registers the routes behind the session
// guards.
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)

	// Any approved account.
	auth := api.Group("/")
	auth.Use(middleware.RequireAuthenticated(jwtService))
	auth.Use(middleware.IPRateLimiter(30, 50))

	surveysGroup := auth.Group("/surveys")
	{
		surveysGroup.GET("", controllers.HandleSurveyFunc(container, "getSurveys"))
		surveysGroup.GET("/:id", controllers.HandleSurveyFunc(container, "getSurvey"))
		surveysGroup.POST("", controllers.HandleSurveyFunc(container, "createSurvey"))
		surveysGroup.PUT("/:id", controllers.HandleSurveyFunc(container, "updateSurvey"))
		surveysGroup.DELETE("/:id", controllers.HandleSurveyFunc(container, "deleteSurvey"))
	}

	// Admin and super admin accounts.
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(jwtService))
	adminGroup.Use(middleware.IPRateLimiter(30, 50))

	adminGroup.GET("/users", controllers.HandleUserAdminFunc(container, "getUsers"))
	adminGroup.GET("/users/:id", controllers.HandleUserAdminFunc(container, "getUser"))
	adminGroup.POST("/users", controllers.HandleUserAdminFunc(container, "createUser"))
	adminGroup.PUT("/users/:id", controllers.HandleUserAdminFunc(container, "updateUser"))
	adminGroup.DELETE("/users/:id", controllers.HandleUserAdminFunc(container, "deleteUser"))
	adminGroup.POST("/users/:id/approve", controllers.HandleUserAdminFunc(container, "approveUser"))
	adminGroup.PUT("/users/:id/password", controllers.HandleUserAdminFunc(container, "updatePassword"))

	adminGroup.GET("/surveys", controllers.HandleAdminSurveyFunc(container, "listSurveys"))
	adminGroup.GET("/surveys/statistics", controllers.HandleAdminSurveyFunc(container, "getStatistics"))

	// Super admin accounts only.
	superAdminGroup := api.Group("/admin")
	superAdminGroup.Use(middleware.RequireSuperAdmin(jwtService))
	superAdminGroup.PUT("/users/:id/role", controllers.HandleUserAdminFunc(container, "updateRole"))
}
