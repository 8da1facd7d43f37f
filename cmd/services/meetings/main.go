package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	config "github.com/meetscribe/backend/config/meetings"
	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/meetings/clients/genai"
	"github.com/meetscribe/backend/services/meetings/handler"
	"github.com/meetscribe/backend/services/meetings/server"
	"github.com/meetscribe/backend/services/meetings/storage"
	"github.com/meetscribe/backend/services/meetings/usecase"
)

func main() {
	log := logger.Default()

	log = logger.New(logger.Config{
		Level:      slog.LevelDebug,
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: false,
	})

	cfg := config.MustLoad()

	ctx := logger.WithContext(context.Background(), log)

	rootCtx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("failed to run()", slog.String("error", err.Error()))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	stg, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open storage", slog.String("error", err.Error()))
		return err
	}
	defer stg.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Error("failed to create upload dir", slog.String("error", err.Error()))
		return err
	}

	provider := genai.New(cfg.GenAI, log)
	if cfg.GenAI.APIKey == "" {
		// The service still boots; uploads will fail until a key is set.
		log.Warn("GENAI_API_KEY not set, transcription disabled")
	}

	usc := usecase.New(stg, provider, cfg.UploadDir)
	h := handler.New(usc, stg, log)

	srv := server.New(cfg, h, log)
	return srv.Start(ctx)
}
