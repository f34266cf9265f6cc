package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/gorillasystems/auth-api/internal/config"
	"github.com/gorillasystems/auth-api/internal/handler"
	"github.com/gorillasystems/auth-api/internal/mailer"
	"github.com/gorillasystems/auth-api/internal/provider"
	"github.com/gorillasystems/auth-api/internal/repository"
	"github.com/gorillasystems/auth-api/internal/session"
	"github.com/gorillasystems/auth-api/internal/usecase"
	"github.com/gorillasystems/auth-api/internal/validate"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	defer cancelPing()
	if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		_ = redisClient.Close()
	}()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping Redis")
	}

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	pendingRepo := repository.NewPendingSignupMongoRepository(ctx, &logger, db)

	codeMailer := mailer.NewMailer(&logger)
	googleProvider := provider.NewGoogleProvider(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.CallbackURL,
	)

	signupUsecase := usecase.NewSignupUsecase(userRepo, pendingRepo, codeMailer, cfg)
	authUsecase := usecase.NewAuthUsecase(userRepo)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, codeMailer, cfg)
	strategies := usecase.NewStrategies(signupUsecase, authUsecase)

	sessions := session.NewStore(redisClient, cfg.Session.TTL)

	validator, err := validate.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validator")
	}

	authHandler := handler.NewAuthHandler(
		&logger,
		validator,
		signupUsecase,
		resetUsecase,
		strategies,
		sessions,
		userRepo,
		googleProvider,
		cfg,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request handled")
	}))
	r.Use(chimiddleware.Recoverer)
	r.Mount("/api/v1", authHandler.Routes())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting auth API server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down server gracefully")
	}
}
