package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/marqlabs/marq/internal/auth"
	"github.com/marqlabs/marq/internal/bookmarks"
	"github.com/marqlabs/marq/internal/config"
	"github.com/marqlabs/marq/internal/enrich"
	"github.com/marqlabs/marq/internal/httpserver"
	"github.com/marqlabs/marq/internal/httpserver/deps"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/mongo"
	"github.com/marqlabs/marq/internal/redis"
	"github.com/marqlabs/marq/internal/store/cache"
	mongostore "github.com/marqlabs/marq/internal/store/mongo"
	"github.com/marqlabs/marq/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	mongoClient *gomongo.Client
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Mongo is the primary store - fail fast if unavailable.
	mongoClient, err := mongo.New(mongo.ConnectOptions{
		URI:            cfg.MongoURI,
		ConnectTimeout: cfg.MongoConnectTimeout,
		RetryInterval:  cfg.MongoRetryInterval,
		MaxWait:        cfg.MongoMaxWait,
		PingTimeout:    cfg.MongoPingTimeout,
		WarnThreshold:  cfg.MongoWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}

	st := mongostore.NewStore(mongoClient.Database(cfg.MongoDatabase))

	// Redis only backs the enrichment cache; without it every creation
	// hits the remote page, which is slower but correct.
	var redisClient *goredis.Client
	var pageCache enrich.PageCache
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		pageCache = cache.NewStore(redisClient, cfg.CacheTTL)
	} else {
		loggerClient.Info("redis not configured, enrichment cache disabled")
	}

	enricher := enrich.NewEnricher(
		enrich.NewMetadataFetcher(cfg.FetchTimeout),
		enrich.NewSummaryFetcher(cfg.SummaryBaseURL, cfg.FetchTimeout),
		pageCache,
		loggerClient,
	)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(st.Users, tokens, loggerClient)
	bookmarkService := bookmarks.NewService(st.Bookmarks, enricher, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		TrustProxy:  cfg.TrustProxy,
		Bookmarks:   bookmarkService,
		Auth:        authService,
		Tokens:      tokens,
		Users:       st.Users,
		MongoClient: mongoClient,
		RedisClient: redisClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Marq v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("Marq %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Warnf("failed to disconnect mongo: %v", err)
	} else {
		a.logger.Info("✅ Mongo disconnected cleanly")
	}

	a.logger.Info("✅ Marq stopped cleanly")
	return nil
}
