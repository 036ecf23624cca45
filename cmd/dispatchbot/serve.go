package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dispatch-bot/config"
	dispatchHTTP "dispatch-bot/internal/dispatch/delivery/http"
	tgDelivery "dispatch-bot/internal/dispatch/delivery/telegram"
	"dispatch-bot/internal/httpserver"
	"dispatch-bot/internal/metrics"
	"dispatch-bot/internal/middleware"
	"dispatch-bot/pkg/telegram"
)

const webhookPath = "/webhook/telegram"

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the Telegram webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger := a.cfg, a.l
	logger.Info(ctx, "Starting Dispatch bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// Metrics
	rec := metrics.NewNop()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheus(metrics.DefaultConfig())
		rec, metricsHandler = prom, prom.Handler()
	}

	// Dispatch domain
	uc, err := a.buildUseCase(ctx, rec)
	if err != nil {
		return err
	}

	// Telegram transport (optional)
	var (
		bot             *telegram.Bot
		telegramHandler tgDelivery.Handler
	)
	if cfg.Telegram.BotToken != "" {
		bot, err = newTelegramBot(cfg.Telegram)
		if err != nil {
			return err
		}
		telegramHandler = tgDelivery.New(logger, uc, bot, tgDelivery.Options{
			RedeliveryTTL: cfg.Webhook.RedeliveryTTL,
			Metrics:       rec,
		})
		logger.Infof(ctx, "Telegram bot @%s initialized", bot.Self().UserName)
	} else {
		logger.Warn(ctx, "Telegram skipped: telegram.bot_token (TELEGRAM_BOT_TOKEN) is missing")
	}

	// HTTP Server
	srv, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		TestHandler:     dispatchHTTP.New(logger, uc),
		Middleware:      middleware.New(logger, cfg.Webhook),
		TrustedProxies:  cfg.Webhook.TrustedProxies,
		MetricsHandler:  metricsHandler,
		MetricsPath:     cfg.Metrics.Path,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if bot != nil {
		g.Go(func() error {
			a.registerWebhook(gctx, bot)
			return nil
		})
	}

	runErr := g.Wait()

	// Let turns accepted before shutdown finish replying.
	if telegramHandler != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
		defer cancel()
		if err := telegramHandler.Drain(drainCtx); err != nil {
			logger.Warnf(context.Background(), "Telegram turns still in flight at shutdown: %v", err)
		}
	}

	if runErr != nil {
		logger.Errorf(ctx, "Server stopped with error: %v", runErr)
		return runErr
	}

	logger.Info(context.Background(), "Server stopped gracefully")
	return nil
}

func newTelegramBot(cfg config.TelegramConfig) (*telegram.Bot, error) {
	if cfg.APIEndpoint != "" {
		return telegram.NewBotWithEndpoint(cfg.BotToken, cfg.APIEndpoint, nil)
	}
	return telegram.NewBot(cfg.BotToken)
}

// registerWebhook registers the configured webhook URL, or the public URL of a
// local ngrok tunnel when none is configured. Failures are logged only.
func (a *app) registerWebhook(ctx context.Context, bot *telegram.Bot) {
	webhookURL := a.cfg.Telegram.WebhookURL
	if webhookURL == "" && a.cfg.Telegram.NgrokAPIURL != "" {
		ngrokURL, err := detectNgrokURL(ctx, a.cfg.Telegram.NgrokAPIURL, ngrokAttempts, 3*time.Second)
		if err != nil {
			a.l.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + webhookPath
		a.l.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if webhookURL == "" {
		a.l.Warn(ctx, "No webhook URL configured, Telegram updates will not be delivered")
		return
	}

	if err := bot.SetWebhook(webhookURL, a.cfg.Webhook.Secret); err != nil {
		a.l.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	a.l.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
