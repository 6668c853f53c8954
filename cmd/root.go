package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snippe-sh/snippe-go/app/client"
	"github.com/snippe-sh/snippe-go/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "snippe",
	Short: "Snippe payments CLI",
	Long:  "A command-line tool for the Snippe payment API: collect payments, send payouts, check balances, and receive webhooks locally.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	return cfg
}

func mustNewClient() *client.Client {
	cfg := mustLoadConfig()
	return client.New(client.Config{
		APIKey:        cfg.API.Key,
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.HTTPTimeout,
		MaxConcurrent: cfg.API.MaxConcurrentRequests,
	})
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to encode output")
	}
	fmt.Println(string(data))
}
