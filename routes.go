package main

import (
	"github.com/streamnest/streamnest/backend/internal/admin"
	"github.com/streamnest/streamnest/backend/internal/analytics"
	"github.com/streamnest/streamnest/backend/internal/auth"
	"github.com/streamnest/streamnest/backend/internal/comment"
	"github.com/streamnest/streamnest/backend/internal/health"
	"github.com/streamnest/streamnest/backend/internal/metrics"
	"github.com/streamnest/streamnest/backend/internal/playlist"
	"github.com/streamnest/streamnest/backend/internal/subscription"
	"github.com/streamnest/streamnest/backend/internal/video"
)

// setupRoutes wires every handler under /api/v1 plus the operational
// endpoints.
func (a *App) setupRoutes() {
	healthHandler := health.NewHandler(a.db, a.cache, a.logger)
	healthHandler.RegisterRoutes(a.router)
	a.router.GET("/metrics", metrics.Handler())

	api := a.router.Group("/api/v1")

	authHandler := auth.NewHandler(a.AuthService, a.response, a.logger)
	authHandler.RegisterRoutes(api)

	videoHandler := video.NewHandler(a.VideoService, a.response, a.logger, &a.Config.Video)
	videoHandler.RegisterRoutes(api, a.AuthService)

	commentHandler := comment.NewHandler(a.CommentService, a.response, a.logger)
	commentHandler.RegisterRoutes(api, a.AuthService)

	subscriptionHandler := subscription.NewHandler(a.SubscriptionService, a.response, a.logger)
	subscriptionHandler.RegisterRoutes(api, a.AuthService)

	playlistHandler := playlist.NewHandler(a.PlaylistService, a.response, a.logger)
	playlistHandler.RegisterRoutes(api, a.AuthService)

	analyticsHandler := analytics.NewHandler(a.AnalyticsService, a.response, a.logger)
	analyticsHandler.RegisterRoutes(api, a.AuthService)

	adminHandler := admin.NewHandler(a.AdminService, a.response, a.logger)
	adminHandler.RegisterRoutes(api, a.AuthService)
}
