package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/snippe-sh/snippe-go/app/factory"
	"github.com/snippe-sh/snippe-go/app/webhook"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run a local webhook receiver",
	Long:  "Start a local HTTP server that verifies inbound Snippe webhooks and logs the decoded events. Useful during development.",
	Run:   runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if cfg.Webhook.SigningKey == "" {
		logrus.Fatal("SNIPPE_WEBHOOK_SIGNING_KEY environment variable is required")
	}

	logger := factory.NewModuleLogger("snippe-listen")
	verifier := webhook.NewVerifier(webhook.Config{
		SigningKey: cfg.Webhook.SigningKey,
		Tolerance:  cfg.Webhook.Tolerance,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	e.POST(cfg.Listen.Path, func(ctx echo.Context) error {
		payload, err := verifier.VerifyEchoRequest(ctx)
		if err != nil {
			factory.LoggerWithContext(logger, ctx).WithError(err).Warn("Rejected webhook")
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		factory.LoggerWithContext(logger, ctx).WithFields(logrus.Fields{
			"event":     payload.Event,
			"reference": payload.Reference,
			"status":    payload.Status,
		}).Info("Verified webhook")
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	addr := cfg.Listen.Host + ":" + cfg.Listen.Port
	go func() {
		logger.WithField("addr", addr).Info("Webhook receiver listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Webhook receiver failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown failed")
	}
}
