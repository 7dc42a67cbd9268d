package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/auth"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/imagegen"
	"server/internal/infra"
	"server/internal/notify"
	"server/internal/portrait"
	"server/internal/storage"
	"server/internal/upload"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := infra.Migrate(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload storage")
	}

	sessions := auth.NewSessions(cfg.SessionSecret)
	var granter auth.Granter
	switch cfg.AuthMode {
	case "oauth":
		granter = &auth.DelegatedOAuth{
			Sessions:     sessions,
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSec,
			AuthURL:      cfg.OAuthAuthURL,
			TokenURL:     cfg.OAuthTokenURL,
			RedirectURL:  cfg.OAuthRedirectURL,
		}
	default:
		granter = &auth.AlwaysGrant{Sessions: sessions}
	}

	portraits := repo.NewPortraitRepository(dbpool)
	uploads := upload.NewService(fileStore, cfg.PublicBaseURL, cfg.MaxUploadFiles, cfg.MaxUploadBytes)
	generator := imagegen.NewOpenAIClient(imagegen.OpenAIOptions{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
	})
	mailer := notify.NewSMTPMailer(notify.SMTPMailerOptions{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
		To:       cfg.AdminEmail,
	})
	orchestrator := portrait.NewService(portraits, generator, mailer, logger)

	app := &handlers.App{
		Logger:    logger,
		Uploads:   uploads,
		Portraits: orchestrator,
		Repo:      portraits,
		Sessions:  sessions,
		Granter:   granter,
	}
	router := httpapi.NewRouter(app, fileStore.BasePath(), cfg.AllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
