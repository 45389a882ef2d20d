package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"speech-translate/auth"
	"speech-translate/config"
	"speech-translate/constant"
	"speech-translate/handler"
	"speech-translate/pkg/rabbitmq"
	"speech-translate/repository"
	"speech-translate/service"
	"speech-translate/storage"
	"speech-translate/stt"
	"speech-translate/translation"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open history store")
	}

	translator, err := translation.NewFromConfig(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to create translator")
	}

	if cfg.Deepgram.APIKey == "" {
		zerolog.Ctx(ctx).Warn().Msg("deepgram.api_key is empty, transcription requests will be rejected by the provider")
	}

	deps := service.Deps{
		Transcriber: stt.NewDeepgramProvider(cfg.Deepgram.APIKey, cfg.Deepgram.URL, cfg.Deepgram.Model, cfg.Deepgram.Timeout),
		Translator:  translator,
		Repository:  repo,
	}

	if archive := newArchive(ctx, cfg); archive != nil {
		deps.Archive = archive
	}

	if cfg.Queue.Enabled() {
		conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn, transcription events disabled")
		} else {
			publisher, err := rabbitmq.NewPublisher(conn, cfg.Queue)
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("NewPublisher, transcription events disabled")
			} else {
				defer publisher.Close()
				deps.Publisher = publisher
			}
		}
	}

	httpHandler := handler.NewHTTPHandler(service.NewUploadService(deps), service.NewHistoryService(repo))
	r := newRouter(ctx, cfg, httpHandler)

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("port", cfg.Server.HttpPort).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func newRouter(ctx context.Context, cfg *config.Config, h *handler.HTTPHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(ctx), cors(cfg.Server.AllowedOrigins))
	addHealth(r)
	r.GET("/", h.Root)

	api := r.Group("/api")
	if cfg.Auth.JWTSecret != "" {
		zerolog.Ctx(ctx).Info().Msg("bearer token required on /api")
		api.Use(auth.Middleware(cfg.Auth.JWTSecret))
	}
	api.POST("/upload", h.Upload)
	api.GET("/history", h.History)

	return r
}

func newRepository(ctx context.Context, cfg *config.Config) (repository.HistoryRepository, error) {
	var repo repository.HistoryRepository

	switch constant.StoreDriver(cfg.Store.Driver) {
	case constant.StoreDriverPostgres:
		db, err := config.NewPostgresDB(cfg.Store)
		if err != nil {
			return nil, err
		}
		repo, err = repository.NewRepo(db)
		if err != nil {
			return nil, err
		}
	case constant.StoreDriverMongo:
		client, err := config.NewMongoClient(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		repo = repository.NewMongoRepo(client.Database(cfg.Store.MongoDatabase))
	case constant.StoreDriverMemory:
		zerolog.Ctx(ctx).Warn().Msg("using in-memory history store, records are lost on restart")
		repo = repository.NewMemoryRepo()
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	if m, ok := repo.(repository.Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate %s store: %w", cfg.Store.Driver, err)
		}
	}

	zerolog.Ctx(ctx).Info().Str("driver", cfg.Store.Driver).Msg("history store ready")
	return repo, nil
}

func newArchive(ctx context.Context, cfg *config.Config) storage.AudioArchive {
	client, err := config.NewMinIOClient(cfg.MinIO)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewMinIOClient, audio archive disabled")
		return nil
	}
	if client == nil {
		return nil
	}
	zerolog.Ctx(ctx).Info().Str("bucket", cfg.MinIO.Bucket).Msg("audio archive enabled")
	return storage.NewMinIOArchive(client, cfg.MinIO.Bucket)
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
