package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamnest/streamnest/backend/internal/admin"
	"github.com/streamnest/streamnest/backend/internal/analytics"
	"github.com/streamnest/streamnest/backend/internal/auth"
	"github.com/streamnest/streamnest/backend/internal/cache"
	"github.com/streamnest/streamnest/backend/internal/comment"
	"github.com/streamnest/streamnest/backend/internal/config"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/playlist"
	"github.com/streamnest/streamnest/backend/internal/storage"
	"github.com/streamnest/streamnest/backend/internal/subscription"
	"github.com/streamnest/streamnest/backend/internal/video"
	"github.com/streamnest/streamnest/backend/internal/video/probe"
)

// App holds all application dependencies
type App struct {
	ctx    context.Context
	Config *config.Config
	db     *gorm.DB
	cache  cache.Service
	router *gin.Engine
	server *http.Server
	logger logger.Logger

	response  httpapi.ResponseHandler
	scheduler *video.StatusScheduler

	videoRepo video.Repository
	userRepo  auth.Repository

	AuthService         *auth.Service
	VideoService        *video.Service
	CommentService      *comment.Service
	SubscriptionService *subscription.Service
	PlaylistService     *playlist.Service
	AnalyticsService    *analytics.Service
	AdminService        *admin.Service
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerService, err := logger.NewService(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %v", err)
	}

	db, err := initDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %v", err)
	}

	cacheService, err := cache.NewRedisService(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	videoStore, thumbStore, err := initStores(cfg, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %v", err)
	}

	responseHandler := httpapi.NewResponseHandler(loggerService)
	scheduler := video.NewStatusScheduler()
	prober := probe.NewService(&cfg.Ffprobe, loggerService)

	authConfig := newAuthConfig(cfg)
	userRepo := auth.NewRepository(db)
	authService := auth.NewService(userRepo, auth.NewJWTService(authConfig), authConfig, loggerService)

	videoRepo := video.NewRepository(db)
	videoService := video.NewService(videoRepo, videoStore, thumbStore, prober,
		scheduler, cacheService, &cfg.Video, loggerService)

	commentService := comment.NewService(comment.NewRepository(db),
		videoLookup{repo: videoRepo}, &cfg.Comment, loggerService)

	subscriptionService := subscription.NewService(subscription.NewRepository(db),
		userLookup{repo: userRepo}, loggerService)

	playlistService := playlist.NewService(playlist.NewRepository(db),
		videoLookup{repo: videoRepo}, &cfg.Playlist, loggerService)

	analyticsService := analytics.NewService(analytics.NewRepository(db), loggerService)

	adminService := admin.NewService(videoService, videoRepo, userRepo, analyticsService, loggerService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestIDMiddleware())
	router.Use(httpapi.RequestLoggerMiddleware(loggerService))

	app := &App{
		ctx:                 ctx,
		Config:              cfg,
		db:                  db,
		cache:               cacheService,
		router:              router,
		logger:              loggerService,
		response:            responseHandler,
		scheduler:           scheduler,
		videoRepo:           videoRepo,
		userRepo:            userRepo,
		AuthService:         authService,
		VideoService:        videoService,
		CommentService:      commentService,
		SubscriptionService: subscriptionService,
		PlaylistService:     playlistService,
		AnalyticsService:    analyticsService,
		AdminService:        adminService,
	}

	app.setupRoutes()
	return app, nil
}

// initStores builds the video and thumbnail blob stores for the configured
// backend.
func initStores(cfg *config.Config, log logger.Logger) (storage.Store, storage.Store, error) {
	if cfg.Storage.Backend == "s3" {
		s3cfg := &storage.S3Config{
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			ForcePathStyle:  cfg.Storage.S3.ForcePathStyle,
		}
		videoStore, err := storage.NewS3Store(s3cfg, "videos", log)
		if err != nil {
			return nil, nil, err
		}
		thumbStore, err := storage.NewS3Store(s3cfg, "thumbnails", log)
		if err != nil {
			return nil, nil, err
		}
		return videoStore, thumbStore, nil
	}

	videoStore, err := storage.NewFileStore(cfg.Storage.UploadDir, log)
	if err != nil {
		return nil, nil, err
	}
	thumbStore, err := storage.NewFileStore(cfg.Storage.ThumbnailDir, log)
	if err != nil {
		return nil, nil, err
	}
	return videoStore, thumbStore, nil
}

func newAuthConfig(cfg *config.Config) *auth.Config {
	authConfig := &auth.Config{}
	authConfig.JWT.Secret = cfg.Auth.JWT.Secret
	authConfig.JWT.AccessTokenTTL = cfg.Auth.JWT.AccessTokenTTL
	authConfig.JWT.RefreshTokenTTL = cfg.Auth.JWT.RefreshTokenTTL
	authConfig.Password.MinLength = cfg.Auth.Password.MinLength
	authConfig.Password.MaxLength = cfg.Auth.Password.MaxLength
	return authConfig
}

// videoLookup adapts the video repository to the existence checks other
// packages need.
type videoLookup struct {
	repo video.Repository
}

func (l videoLookup) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	if _, err := l.repo.FindByID(ctx, videoID); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// userLookup adapts the account repository the same way.
type userLookup struct {
	repo auth.Repository
}

func (l userLookup) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if _, err := l.repo.FindUserByID(ctx, userID); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Run starts the HTTP server.
func (a *App) Run() error {
	port := a.Config.Server.Port
	a.logger.LogInfo(fmt.Sprintf("Starting server on port %d", port), nil)

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: a.router,
	}
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return a.logger.LogError(err, "server failed to start")
	}
	return nil
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating graceful shutdown", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.LogWarn("Error shutting down HTTP server", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Cancel pending ready transitions so no timer fires into a closed pool.
	a.scheduler.Shutdown()

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.LogWarn("Error closing cache connections", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			a.logger.LogWarn("Error getting underlying database instance", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			if err := sqlDB.Close(); err != nil {
				a.logger.LogWarn("Error closing database connections", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	a.logger.LogInfo("Application shutdown complete", nil)
	return nil
}
