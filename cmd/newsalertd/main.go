package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/news-alert/internal/async"
	"github.com/joseph-ayodele/news-alert/internal/common"
	"github.com/joseph-ayodele/news-alert/internal/llm/openai"
	"github.com/joseph-ayodele/news-alert/internal/mail"
	"github.com/joseph-ayodele/news-alert/internal/pipeline"
	"github.com/joseph-ayodele/news-alert/internal/report"
	"github.com/joseph-ayodele/news-alert/internal/server"
	"github.com/joseph-ayodele/news-alert/internal/task"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := openai.NewClient(openai.Config{
		APIKey:        cfg.LLM.APIKey,
		BaseURL:       cfg.LLM.BaseURL,
		Model:         cfg.LLM.Model,
		Timeout:       cfg.LLM.Timeout,
		SearchTimeout: cfg.LLM.SearchTimeout,
	}, logger)

	store := task.NewStore(logger)
	reports := report.NewService(cfg.Reports.Dir, logger)
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Address:  cfg.SMTP.Address,
		Password: cfg.SMTP.Password,
		AppName:  cfg.SMTP.AppName,
	}, logger)

	pipe := pipeline.New(store, client, client, reports, mailer, cfg.SMTP.AppName, logger)
	queue := async.NewTaskQueue(pipe, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithTaskTimeout(cfg.Queue.TaskTimeout),
	)

	srv := server.New(store, queue, logger)
	if err := srv.Serve(ctx, cfg.Server.HTTPAddr, cfg.Server.ShutdownTimeout); err != nil {
		logger.Error("http server error", "error", err)
	}

	// Let running tasks finish before exiting.
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Queue.TaskTimeout+time.Minute)
	defer cancel()
	queue.Shutdown(drainCtx)
}
