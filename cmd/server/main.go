package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kortix-ai/agent-platform-api/cmd"
	"github.com/kortix-ai/agent-platform-api/internal/agent"
	"github.com/kortix-ai/agent-platform-api/internal/agentcore"
	"github.com/kortix-ai/agent-platform-api/internal/config"
	"github.com/kortix-ai/agent-platform-api/internal/platform/logger"
	"github.com/kortix-ai/agent-platform-api/internal/platform/otel"
	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/server"
	"github.com/kortix-ai/agent-platform-api/internal/store/cache"
	"github.com/kortix-ai/agent-platform-api/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	go cmd.CheckForUpdates()

	shutdownTracer, err := otel.InitTracer("agent-platform-api", log, os.Stdout)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err), zap.String("dsn", cfg.Database.DSN))
	}
	defer repo.Close()

	var cacheService cache.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		defer redisCache.Close()
		cacheService = redisCache
		log.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		cacheService = cache.NewMemoryCache()
		log.Info("using in-memory cache")
	}

	reg := registry.Default()
	log.Info("model registry loaded",
		zap.Int("models", len(reg.GetAll(false))),
		zap.String("mandated_model", reg.MandatedModel().ID),
	)

	// AgentCore adapters are constructed at boot so a misconfigured
	// deployment fails before taking traffic.
	if cfg.AgentCore.Enabled {
		acCfg, err := agentcore.LoadConfig()
		if err != nil {
			log.Fatal("failed to load agentcore config", zap.Error(err))
		}
		for service, construct := range map[string]func() error{
			"runtime":          func() error { _, err := agentcore.NewRuntime(acCfg, log); return err },
			"memory":           func() error { _, err := agentcore.NewMemory(acCfg, log); return err },
			"code_interpreter": func() error { _, err := agentcore.NewCodeInterpreter(acCfg, log); return err },
			"browser":          func() error { _, err := agentcore.NewBrowser(acCfg, log); return err },
			"gateway":          func() error { _, err := agentcore.NewGateway(acCfg, log); return err },
		} {
			if err := construct(); err != nil {
				if errors.Is(err, agentcore.ErrServiceDisabled) {
					log.Info("agentcore service disabled", zap.String("service", service))
					continue
				}
				log.Fatal("failed to initialize agentcore service",
					zap.String("service", service), zap.Error(err))
			}
		}
	}

	agents := agent.NewService(log, repo, reg, cacheService)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.New(cfg, log, reg, agents).Handler(),
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}
