package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/catalog-crawler/internal/adapter/chromedp_fetcher"
	"github.com/user/catalog-crawler/internal/adapter/goquery_translator"
	"github.com/user/catalog-crawler/internal/adapter/httpclient"
	"github.com/user/catalog-crawler/internal/adapter/postgres"
	redis_adapter "github.com/user/catalog-crawler/internal/adapter/redis"
	"github.com/user/catalog-crawler/internal/delivery/http/handler"
	"github.com/user/catalog-crawler/internal/delivery/http/router"
	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/internal/repository"
	"github.com/user/catalog-crawler/internal/usecase"
	"github.com/user/catalog-crawler/pkg/config"
	"github.com/user/catalog-crawler/pkg/logger"
	"github.com/user/catalog-crawler/pkg/metrics"
	"github.com/user/catalog-crawler/pkg/utils"
)

func main() {
	startFrom := flag.String("start-from", "", "Starting name to crawl from (wins over -resume)")
	autoResume := flag.Bool("resume", false, "Resume from the last stored name")
	maxPages := flag.Int("max-pages", 0, "Maximum number of pages to fetch (0 = unlimited)")
	flag.Parse()

	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()

	// An interrupt cancels the run cooperatively: the driver stops at the
	// next page boundary and everything already committed is preserved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database Connections ---
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established", "database", cfg.PostgresDB)

	// --- Repositories ---
	catalogRepo := postgres.NewCatalogRepo(dbpool)
	failureRepo := postgres.NewFetchFailureRepo(dbpool)
	if err := catalogRepo.EnsureSchema(ctx); err != nil {
		slog.Error("Schema setup failed", "error", err)
		os.Exit(1)
	}
	if err := failureRepo.EnsureSchema(ctx); err != nil {
		slog.Error("Schema setup failed", "error", err)
		os.Exit(1)
	}

	var seenCache repository.SeenCacheRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			// The cache is a fast path only; the crawl is correct without it.
			slog.Warn("Unable to connect to Redis, continuing without seen cache", "error", err)
		} else {
			seenCache = redis_adapter.NewSeenCacheRepo(rdb, cfg.SeenCacheTTL)
			slog.Info("Redis seen cache established")
		}
	}

	// --- Collaborators ---
	var fetcher repository.PageFetcher
	if cfg.RenderJS {
		fetcher = chromedp_fetcher.NewChromedpFetcher(cfg.FetchTimeout, cfg.UserAgent)
	} else {
		fetcher = httpclient.NewHTTPFetcher(httpclient.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		})
	}

	translator, err := goquery_translator.New(goquery_translator.Config{
		BaseURL:         cfg.ListingBaseURL,
		ListSelector:    cfg.ListSelector,
		NavSelector:     cfg.NavSelector,
		NamespacePrefix: cfg.NamespacePrefix,
		EndpointMarker:  cfg.ListingPageName,
	})
	if err != nil {
		slog.Error("Invalid translator configuration", "error", err)
		os.Exit(1)
	}

	listing := utils.ListingURLBuilder{
		Endpoint: cfg.ListingEndpoint,
		PageName: cfg.ListingPageName,
	}

	// --- Use Cases ---
	crawler := usecase.NewCrawler(catalogRepo, fetcher, translator, seenCache, failureRepo, usecase.Options{
		Listing: listing,
		Delay:   cfg.CrawlDelay,
	})
	planner := usecase.NewResumePlanner(catalogRepo)

	// --- Ops HTTP Server ---
	if cfg.ServerPort != "" {
		opsHandler := handler.NewHandler(crawler, catalogRepo)
		server := &http.Server{
			Addr:         ":" + cfg.ServerPort,
			Handler:      router.New(opsHandler),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("Starting ops server", "port", cfg.ServerPort)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Ops server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	// --- Crawl ---
	cursor, err := planner.Plan(ctx, *startFrom, *autoResume)
	if err != nil {
		slog.Error("Could not plan starting cursor", "error", err)
		os.Exit(1)
	}

	summary := crawler.Run(ctx, cursor, *maxPages)

	fmt.Printf("\n=== Crawl Summary ===\n")
	fmt.Printf("Pages fetched:    %d\n", summary.PagesFetched)
	fmt.Printf("Items added:      %d\n", summary.ItemsAdded)
	fmt.Printf("Total items:      %d\n", summary.FinalCount)
	fmt.Printf("Stop cause:       %s\n", summary.Cause)
	fmt.Printf("Database:         %s@%s/%s\n", cfg.PostgresUser, cfg.PostgresHost, cfg.PostgresDB)

	if summary.Cause == entity.StopPersistenceFailure {
		os.Exit(1)
	}
	if summary.Err != nil && !errors.Is(summary.Err, context.Canceled) {
		slog.Warn("Crawl ended early", "cause", summary.Cause, "error", summary.Err)
	}
}
