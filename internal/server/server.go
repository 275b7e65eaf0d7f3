package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kortix-ai/agent-platform-api/internal/agent"
	"github.com/kortix-ai/agent-platform-api/internal/config"
	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/server/middleware"
	"github.com/kortix-ai/agent-platform-api/internal/server/validator"
)

const serviceName = "agent-platform-api"

type Server struct {
	router   *gin.Engine
	config   *config.Config
	logger   *zap.Logger
	registry *registry.Registry
	agents   *agent.Service
}

func New(cfg *config.Config, logger *zap.Logger, reg *registry.Registry, agents *agent.Service) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.Tracing(serviceName))

	s := &Server{
		router:   engine,
		config:   cfg,
		logger:   logger,
		registry: reg,
		agents:   agents,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
