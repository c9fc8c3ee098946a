package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/config"
	"github.com/Abdus2609/vizor/internal/handlers"
	"github.com/Abdus2609/vizor/internal/middlewares"
	"github.com/Abdus2609/vizor/internal/repositories"
	"github.com/Abdus2609/vizor/internal/routes"
	"github.com/Abdus2609/vizor/internal/services"
)

// Server holds the HTTP server and the services it shares with shutdown.
type Server struct {
	HTTP        *http.Server
	Catalog     *services.CatalogService
	Connections *services.ConnectionService

	redis  *redis.Client
	logger *zap.Logger
}

// Stores picks Redis-backed history when an address is configured and the
// in-memory fallbacks otherwise. The returned client is nil in that case.
func Stores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.ConnectionHistoryRepository, repositories.QueryHistoryRepository, *redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("No Redis address configured, keeping history in memory")
		return repositories.NewMemoryConnectionHistory(),
			repositories.NewMemoryQueryHistoryRepository(cfg.Redis.QueryHistorySize),
			nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Fail fast with a clear message
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	return repositories.NewRedisRepository(rdb, cfg.ConnectionHistoryTTL()),
		repositories.NewRedisQueryHistoryRepository(rdb, cfg.Redis.QueryHistorySize),
		rdb, nil
}

func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	connectionHistory, queryHistory, rdb, err := Stores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Dependency injection
	connector := services.NewConnector(cfg.PoolOptions(), logger)
	connectionService := services.NewConnectionService(connector, connectionHistory, logger)
	catalogService := services.NewCatalogService(catalog.NewStore(), connectionService, cfg.IntrospectionTimeout(), logger)
	visualisationService := services.NewVisualisationService(catalogService, connectionService, queryHistory, cfg.QueryTimeout(), logger)

	connectionHandler := handlers.NewConnectionHandler(catalogService, connectionService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, connectionService)
	visualisationHandler := handlers.NewVisualisationHandler(visualisationService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(router, connectionHandler, catalogHandler, visualisationHandler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.QueryTimeout() + 10*time.Second,
	}

	return &Server{
		HTTP:        httpServer,
		Catalog:     catalogService,
		Connections: connectionService,
		redis:       rdb,
		logger:      logger,
	}, nil
}

// ConnectStartupDatasource connects the datasource from the configuration,
// if one is set. Failure is logged and the server keeps waiting for db-login.
func (s *Server) ConnectStartupDatasource(ctx context.Context, cfg *config.Config) {
	details, ok := cfg.StartupDatasource()
	if !ok {
		return
	}
	if _, err := s.Catalog.Connect(ctx, details); err != nil {
		s.logger.Warn("Startup datasource unavailable, waiting for db-login", zap.Error(err))
	}
}

// Close releases the datasource and the Redis client after the HTTP server
// has stopped.
func (s *Server) Close() {
	s.Connections.Close()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
}
