package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stablecoin-scout/internal/cache"
	"stablecoin-scout/internal/config"
	"stablecoin-scout/internal/db"
	"stablecoin-scout/internal/handler"
	"stablecoin-scout/internal/provider"
	"stablecoin-scout/internal/repository"
	"stablecoin-scout/internal/research"
	"stablecoin-scout/internal/service"
	"stablecoin-scout/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "stablecoin-scout/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newChatLLMFunc   = func(apiKey string) provider.LLMClient {
		if apiKey == "" {
			return nil
		}
		return provider.NewOpenAIClient(apiKey)
	}
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Stablecoin Scout API
// @version         1.0
// @description     Stablecoin research service: query routing, market data, news, and adoption tracking.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Repositories and migrations; both stay nil without a database
	var (
		knowledge research.KnowledgeStore
		leads     handler.LeadStore
	)
	if db.Pool != nil {
		leadRepo := repository.NewLeadRepository(db.Pool, tracer)
		knowledgeRepo := repository.NewKnowledgeRepository(db.Pool, tracer)
		if err := leadRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run lead migrations: %v", err)
		}
		if err := knowledgeRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run knowledge migrations: %v", err)
		}
		leads = leadRepo
		knowledge = knowledgeRepo
	}

	// Providers
	chatProvider := provider.NewChatProvider(tracer, newChatLLMFunc(cfg.OpenAIAPIKey), cfg.OpenAIModel)
	chartProvider := provider.NewMarketChartProvider(tracer)
	distProvider := provider.NewChainDistributionProvider(tracer)
	newsProvider := provider.NewNewsSearchProvider(tracer, cfg.SerperAPIKey)

	// Services
	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	marketService := service.NewMarketService(tracer, chartProvider, distProvider, redisClient)
	composer := research.NewComposer(tracer, chatProvider, marketService, newsProvider, knowledge)
	researchService := research.NewService(tracer, composer)

	// Handlers and routes
	h := handler.New(tracer, researchService, leads, cfg.APIKey, cfg.LeadListLimit)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("stablecoin-scout"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
