package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current account balance",
	Run:   runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(_ *cobra.Command, _ []string) {
	c := mustNewClient()

	balance, err := c.GetBalance(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to fetch balance")
	}
	printJSON(balance)
}
