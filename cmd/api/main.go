package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindful/internal/cache"
	"mindful/internal/config"
	"mindful/internal/consul"
	"mindful/internal/database"
	"mindful/internal/logger"
	"mindful/internal/metrics"
	"mindful/internal/server"
	"mindful/internal/sessions"
	"mindful/internal/users"
)

func gracefulShutdown(apiServer *http.Server, registrar consul.ServiceRegistrar, serviceID string, log *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	if registrar != nil {
		if err := registrar.Deregister(serviceID); err != nil {
			log.Error("Failed to deregister from Consul", "error", err)
		} else {
			log.Info("Deregistered from Consul", "service_id", serviceID)
		}
	}

	// The server has 5 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exiting")

	done <- true
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	logger.SetDefault(log)

	log.Info("Starting mindful API",
		"port", cfg.Port,
		"db_driver", cfg.Database.Driver,
		"db_host", cfg.Database.Host,
		"cache_backend", cfg.Cache.Backend,
	)

	db := database.New(cfg.Database, log)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.InitSchema {
		if err := database.InitializeSchema(ctx, db); err != nil {
			log.Error("Schema initialization failed", "error", err)
			os.Exit(1)
		}
		log.Info("Schema initialized")
	}

	m := metrics.New()

	cacheCfg, redisClient := cache.Connect(ctx, cfg.Cache, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	userCache := cache.Instrument(cache.New[users.CacheEntry](cacheCfg, "users", redisClient, log), "users", m)
	sessionCache := cache.Instrument(cache.New[sessions.Session](cacheCfg, "sessions", redisClient, log), "sessions", m)

	userService := users.NewService(users.NewRepository(db), userCache, log)
	sessionService := sessions.NewService(sessions.NewRepository(db), sessionCache, log)

	apiServer := server.NewServer(cfg, server.Dependencies{
		DB:       db,
		Users:    userService,
		Sessions: sessionService,
		Metrics:  m,
	}, log)

	var (
		registrar consul.ServiceRegistrar
		serviceID string
	)
	if cfg.RegistrationEnabled() {
		registrar, serviceID = register(cfg, log)
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, registrar, serviceID, log, done)

	log.Info("Mindful API listening", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("HTTP server error", "error", err)
		os.Exit(1)
	}

	<-done
	log.Info("Graceful shutdown complete")
}

// register announces the process to Consul. Failures are logged and the API keeps serving.
func register(cfg *config.Config, log *slog.Logger) (consul.ServiceRegistrar, string) {
	client, err := consul.NewClient(cfg.Consul)
	if err != nil {
		log.Error("Failed to create Consul client", "error", err)
		return nil, ""
	}

	svc := consul.ServiceFor(cfg)
	if err := consul.Announce(client, svc); err != nil {
		log.Error("Failed to register service with Consul", "error", err)
		return nil, ""
	}

	log.Info("Registered with Consul", "service_id", svc.ID)
	return client, svc.ID
}
