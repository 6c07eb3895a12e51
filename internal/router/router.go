package router

import (
	"net/http"

	"garden-go/internal/config"
	"garden-go/internal/handler"
	"garden-go/internal/middleware"
	"garden-go/internal/repository"
	"garden-go/internal/service"
	"garden-go/internal/utils"
	"garden-go/internal/ws"
	"garden-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const plantLockPrefix = "garden:plant:"

// SetupRouter 设置路由，redisClient为nil时使用进程内锁
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger logrus.FieldLogger,
	db *gorm.DB,
	redisClient redis.UniversalClient,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	vegetableRepo := repository.NewVegetableRepository(db)
	gardenRepo := repository.NewGardenRepository(db)

	// 注册锁
	var guard service.OwnershipGuard = service.NewLocalGuard()
	if redisClient != nil {
		limiter := redis_limiter.NewRedisLimiter(redisClient, 1, plantLockPrefix, cfg.Redis.GetLockTTL(), logger)
		guard = service.NewRedisGuard(limiter, cfg.Redis.GetLockTTL())
	}

	hub := ws.NewHub()

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	vegetableService := service.NewVegetableService(db, userRepo, vegetableRepo, guard, logger)
	gardenService := service.NewGardenService(gardenRepo, hub, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	vegetableHandler := handler.NewVegetableHandler(vegetableService)
	gardenHandler := handler.NewGardenHandler(gardenService)
	feedHandler := handler.NewGardenFeedHandler(hub, logger)

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Garden tracker API",
			"version": "1.0.0",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// 菜园
	r.POST("/garden", gardenHandler.UpdateGarden)
	r.GET("/mygarden", gardenHandler.GetGarden)
	r.GET("/ws/garden", feedHandler.Subscribe)

	var fallback middleware.LatestLoginResolver
	if cfg.Session.LatestLoginFallback() {
		fallback = authService
	}

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 当前用户路由
		authorized := api.Group("/me")
		authorized.Use(middleware.AuthMiddleware(jwtManager, fallback))
		{
			authorized.GET("", authHandler.GetMe)
			authorized.POST("/plant", vegetableHandler.RegisterPlant)
			authorized.GET("/plant", vegetableHandler.PlantMethodNotAllowed)
			authorized.GET("/ownedIds", vegetableHandler.ListOwned)
			authorized.GET("/ownedIDs", vegetableHandler.ListOwned)
			authorized.GET("/:id", vegetableHandler.GetVegetable)
		}
	}

	return r
}
