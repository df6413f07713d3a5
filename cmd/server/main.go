package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"frame_ledger_backend/internal/cache"
	"frame_ledger_backend/internal/config"
	"frame_ledger_backend/internal/database"
	"frame_ledger_backend/internal/router"
	"frame_ledger_backend/internal/services"
	"frame_ledger_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", true)
		utils.LogError(err, "Invalid configuration")
		os.Exit(1)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)

	// Money is rendered as JSON numbers (49.99), not strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	db, err := database.Open(ctx, database.Options{
		DSN:          cfg.DSN(),
		MaxOpenConns: cfg.DBMaxOpenConns,
		ApplySchema:  cfg.ApplySchema,
	})
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()

	var idem services.IdempotencyStore
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			utils.LogError(err, "Failed to connect redis", map[string]interface{}{"addr": cfg.RedisAddr})
			os.Exit(1)
		}
		defer rdb.Close()
		idem = cache.NewRedisIdempotencyStore(rdb)
		utils.LogInfo("Connected to redis", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		utils.LogWarn("REDIS_ADDR not set, sale idempotency keys are ignored")
	}

	var tokens *utils.TokenManager
	if cfg.JWTSecret != "" {
		if tokens, err = utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL); err != nil {
			utils.LogError(err, "Failed to initialize token manager")
			os.Exit(1)
		}
	}
	if cfg.AuthDisabled {
		utils.LogWarn("AUTH_DISABLED is set, every request runs as the distributor")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.RequestID())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Idempotency-Key", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{utils.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db, cfg, tokens, idem)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":          cfg.Port,
			"stock_policy":  cfg.StockPolicy,
			"frame_policy":  cfg.FrameReimportPolicy,
			"billing_tz":    cfg.BillingLocation.String(),
			"idempotency":   idem != nil,
			"auth_disabled": cfg.AuthDisabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
	utils.LogInfo("Server stopped")
}
