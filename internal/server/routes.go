package server

import (
	"github.com/kortix-ai/agent-platform-api/internal/server/middleware"
	v1 "github.com/kortix-ai/agent-platform-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// Health Check (Public)
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.logger,
	)

	// API V1 Group
	api := s.router.Group("/v1")
	api.Use(limiter.Middleware())
	api.Use(middleware.Auth(s.config.Server.APIKeys)) // Require API Key for everything below
	api.Use(middleware.Identity())
	{
		modelHandler := v1.NewModelHandler(s.registry)
		api.GET("/models", modelHandler.ListModels)
		// catch-all so canonical "<provider>/<name>" ids route whole
		api.GET("/models/*id", modelHandler.GetModel)

		costHandler := v1.NewCostHandler(s.registry)
		api.POST("/usage/cost", costHandler.CalculateCost)

		billingHandler := v1.NewBillingHandler()
		api.GET("/billing/tiers", billingHandler.ListTiers)

		agentHandler := v1.NewAgentHandler(s.agents)
		api.POST("/agents", agentHandler.Create)
		api.GET("/agents", agentHandler.List)
		api.GET("/agents/:id", agentHandler.Get)
		api.PUT("/agents/:id", agentHandler.Update)
		api.DELETE("/agents/:id", agentHandler.Delete)
		api.GET("/agents/:id/versions", agentHandler.Versions)
	}
}
