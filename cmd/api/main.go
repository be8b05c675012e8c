package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidcatalog/internal/admin"
	"github.com/hszk-dev/vidcatalog/internal/ads"
	"github.com/hszk-dev/vidcatalog/internal/api/handler"
	"github.com/hszk-dev/vidcatalog/internal/api/middleware"
	"github.com/hszk-dev/vidcatalog/internal/config"
	"github.com/hszk-dev/vidcatalog/internal/domain/repository"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/cache"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/interaction"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/metadata"
	"github.com/hszk-dev/vidcatalog/internal/infrastructure/storage"
	"github.com/hszk-dev/vidcatalog/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.Storage.Endpoint,
		PublicEndpoint: cfg.Storage.PublicEndpoint,
		AccessKey:      cfg.Storage.AccessKey,
		SecretKey:      cfg.Storage.SecretKey,
		Bucket:         cfg.Storage.Bucket,
		UseSSL:         cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to object storage: %w", err)
	}
	logger.Info("connected to object storage",
		slog.String("endpoint", cfg.Storage.Endpoint),
		slog.String("bucket", storageClient.Bucket()),
	)

	var redisClient *redis.Client
	if cfg.Redis.Enabled || cfg.Interactions.Backend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info("connected to redis", slog.String("addr", cfg.Redis.Addr))
	}

	var metadataRepo repository.MetadataRepository = metadata.NewStore(storageClient)
	if cfg.Redis.Enabled {
		metadataRepo = cache.NewCachedMetadataRepository(
			metadataRepo,
			cache.NewRedisMetadataCache(redisClient),
			cfg.Redis.CacheTTL,
		)
	}

	var likeRepo repository.LikeRepository
	var commentRepo repository.CommentRepository
	if cfg.Interactions.Backend == "redis" {
		likeRepo = interaction.NewRedisLikeStore(redisClient)
		commentRepo = interaction.NewRedisCommentStore(redisClient)
	} else {
		likeRepo = interaction.NewMemoryLikeStore()
		commentRepo = interaction.NewMemoryCommentStore()
	}

	catalogSvc := usecase.NewCatalogService(storageClient, metadataRepo)
	metadataSvc := usecase.NewMetadataService(storageClient, metadataRepo, cfg.Storage.PublicBaseURL)
	interactionSvc := usecase.NewInteractionService(likeRepo, commentRepo)
	playbackSvc := usecase.NewPlaybackService(storageClient)

	sessions := admin.NewSessionManager(cfg.Admin.Password, cfg.Admin.SessionTTL)
	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	r := setupRouter(logger, routerDeps{
		sessions:       sessions,
		videoHandler:   handler.NewVideoHandler(catalogSvc, playbackSvc),
		interactions:   handler.NewInteractionHandler(interactionSvc),
		adminHandler:   handler.NewAdminHandler(sessions, metadataSvc, playbackSvc),
		adsHandler:     handler.NewAdsHandler(adsConfigFrom(cfg.Ads)),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type routerDeps struct {
	sessions     *admin.SessionManager
	videoHandler *handler.VideoHandler
	interactions *handler.InteractionHandler
	adminHandler *handler.AdminHandler
	adsHandler   *handler.AdsHandler
}

func setupRouter(logger *slog.Logger, deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Visitor)

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/videos", deps.videoHandler.List)
		r.Get("/videos/play", deps.videoHandler.Play)

		r.Get("/videos/{key}/likes", deps.interactions.GetLikes)
		r.Post("/videos/{key}/likes", deps.interactions.ToggleLike)
		r.Get("/videos/{key}/comments", deps.interactions.ListComments)
		r.Post("/videos/{key}/comments", deps.interactions.AddComment)

		r.Get("/ads/config", deps.adsHandler.Config)
		r.Get("/ads/vast", deps.adsHandler.Vast)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", deps.adminHandler.Login)
			r.Post("/logout", deps.adminHandler.Logout)
			r.Get("/auth", deps.adminHandler.Auth)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(deps.sessions))
				r.Get("/videos/{key}/metadata", deps.adminHandler.GetMetadata)
				r.Put("/videos/{key}/metadata", deps.adminHandler.PutMetadata)
				r.Post("/videos/{key}/cover", deps.adminHandler.UploadCover)
				r.Post("/videos/presign-upload", deps.adminHandler.PresignUpload)
				r.Post("/videos/delete", deps.adminHandler.DeleteVideo)
			})
		})
	})

	return r
}

func adsConfigFrom(cfg config.AdsConfig) ads.Config {
	return ads.Config{
		Enabled:  cfg.Enabled,
		Provider: ads.Provider(cfg.Provider),
		ExoClick: ads.Slots{
			PreRoll:  cfg.ExoClickPreRoll,
			MidRoll:  cfg.ExoClickMidRoll,
			PostRoll: cfg.ExoClickPostRoll,
		},
		Adsterra: ads.Slots{
			PreRoll:  cfg.AdsterraPreRoll,
			MidRoll:  cfg.AdsterraMidRoll,
			PostRoll: cfg.AdsterraPostRoll,
		},
	}
}
