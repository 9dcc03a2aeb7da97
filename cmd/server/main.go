// Package main runs the live lecture platform HTTP server with
// WebSocket session sync and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kyozai-live/backend/config"
	"github.com/kyozai-live/backend/internal/attendance"
	"github.com/kyozai-live/backend/internal/auth"
	"github.com/kyozai-live/backend/internal/feedback"
	"github.com/kyozai-live/backend/internal/materials"
	"github.com/kyozai-live/backend/internal/middleware"
	"github.com/kyozai-live/backend/internal/models"
	"github.com/kyozai-live/backend/internal/realtime"
	"github.com/kyozai-live/backend/internal/rooms"
	"github.com/kyozai-live/backend/pkg/database"
	"github.com/kyozai-live/backend/pkg/redis"
	"github.com/kyozai-live/backend/pkg/response"
	"github.com/kyozai-live/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var limiter *feedback.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("redis disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter = feedback.NewLimiter(rdb.Client)
		}
	}

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MaterialsBucket:      cfg.AWS.MaterialsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	// Session core: registry + hub + gateway.
	registry := rooms.NewRegistry()
	hub := realtime.NewHub(logger)
	materialSvc := materials.NewService(cfg.Materials.Dir)
	gateway := realtime.NewGateway(registry, hub, materialSvc, logger)

	// Attendance log fed by gateway join/leave.
	attendanceRepo := attendance.NewRepository(pool)
	attendanceHandler := attendance.NewHandler(attendanceRepo)
	gateway.SetAttendanceHooks(
		func(roomID string, p models.Participant) {
			if err := attendanceRepo.LogJoin(context.Background(), roomID, p); err != nil {
				logger.Warn("log join", zap.Error(err))
			}
		},
		func(roomID string, p models.Participant) {
			if err := attendanceRepo.LogLeave(context.Background(), roomID, p.ID); err != nil {
				logger.Warn("log leave", zap.Error(err))
			}
		},
	)

	// Rooms
	roomHandler := rooms.NewHandler(registry, cfg.Materials.FallbackID, logger)
	roomHandler.OnDelete = hub.DropRoom

	// Materials
	var presign materials.Presigner
	if s3Client != nil {
		presign = s3Client
	}
	materialHandler := materials.NewHandler(materialSvc, presign)

	// Feedback
	feedbackRepo := feedback.NewRepository(pool)
	feedbackHandler := feedback.NewHandler(feedbackRepo, limiter, logger)

	// Admin auth
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	authHandler := auth.NewHandler(jwtService, cfg.Admin.PasswordHash, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (admin)
	router.POST("/auth/login", authHandler.Login)

	// Entry points
	router.GET("/instructor/:id", roomHandler.InstructorEntry)
	router.GET("/student/:id", roomHandler.StudentEntry)

	// Public API
	api := router.Group("/api")
	{
		api.POST("/rooms", roomHandler.Create)
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:id", roomHandler.Get)

		api.GET("/materials", materialHandler.List)
		api.GET("/materials/:id", materialHandler.Get)
		api.GET("/materials/:id/pages/:page/url", materialHandler.PageURL)

		api.POST("/feedback", feedbackHandler.Submit)
		api.GET("/feedback/statistics", feedbackHandler.Statistics)
		api.GET("/feedback/analytics", feedbackHandler.Statistics)
	}

	// Admin API (JWT required)
	admin := router.Group("/api")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		admin.GET("/feedback", feedbackHandler.List)
		admin.GET("/rooms/:id/attendance", attendanceHandler.ListByRoom)
		admin.DELETE("/rooms/:id", roomHandler.Delete)
	}

	// WebSocket
	router.GET("/ws", realtime.ServeWS(gateway, logger))

	// Local page images when S3 is not configured.
	router.Static("/static/materials", cfg.Materials.Dir)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
