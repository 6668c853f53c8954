package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/snippe-sh/snippe-go/app/client"
	"github.com/snippe-sh/snippe-go/app/types"
	"github.com/spf13/cobra"
)

var payoutFlags struct {
	amount           int64
	recipientName    string
	recipientPhone   string
	recipientBank    string
	recipientAccount string
	narration        string
	webhookURL       string
	idempotencyKey   string
	autoKey          bool
}

var payoutListFlags struct {
	limit  int
	offset int
}

var payoutCmd = &cobra.Command{
	Use:   "payout",
	Short: "Send disbursements",
}

var payoutMobileCmd = &cobra.Command{
	Use:   "mobile",
	Short: "Send money to a mobile money account",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		payout, err := c.CreateMobilePayout(context.Background(), &types.CreateMobilePayoutRequest{
			Amount:         payoutFlags.amount,
			RecipientName:  payoutFlags.recipientName,
			RecipientPhone: payoutFlags.recipientPhone,
			Narration:      payoutFlags.narration,
			WebhookURL:     payoutFlags.webhookURL,
			IdempotencyKey: payoutIdempotencyKey(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create mobile payout")
		}
		printJSON(payout)
	},
}

var payoutBankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Send money to a bank account",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		payout, err := c.CreateBankPayout(context.Background(), &types.CreateBankPayoutRequest{
			Amount:           payoutFlags.amount,
			RecipientName:    payoutFlags.recipientName,
			RecipientBank:    types.BankCode(payoutFlags.recipientBank),
			RecipientAccount: payoutFlags.recipientAccount,
			Narration:        payoutFlags.narration,
			WebhookURL:       payoutFlags.webhookURL,
			IdempotencyKey:   payoutIdempotencyKey(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create bank payout")
		}
		printJSON(payout)
	},
}

var payoutGetCmd = &cobra.Command{
	Use:   "get <reference>",
	Short: "Fetch a payout by reference",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		c := mustNewClient()
		payout, err := c.GetPayout(context.Background(), args[0])
		if err != nil {
			logrus.WithError(err).Fatal("Failed to fetch payout")
		}
		printJSON(payout)
	},
}

var payoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payouts",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		list, err := c.ListPayouts(context.Background(), types.ListOptions{
			Limit:  payoutListFlags.limit,
			Offset: payoutListFlags.offset,
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to list payouts")
		}
		printJSON(list)
	},
}

var payoutFeeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Quote the fee for a payout amount",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		fee, err := c.CalculatePayoutFee(context.Background(), payoutFlags.amount)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to quote payout fee")
		}
		printJSON(fee)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{payoutMobileCmd, payoutBankCmd} {
		cmd.Flags().Int64Var(&payoutFlags.amount, "amount", 0, "amount in the currency's smallest unit")
		cmd.Flags().StringVar(&payoutFlags.recipientName, "name", "", "recipient full name")
		cmd.Flags().StringVar(&payoutFlags.narration, "narration", "", "payout description")
		cmd.Flags().StringVar(&payoutFlags.webhookURL, "webhook-url", "", "URL for status webhooks")
		cmd.Flags().StringVar(&payoutFlags.idempotencyKey, "idempotency-key", "", "idempotency key for the creation call")
		cmd.Flags().BoolVar(&payoutFlags.autoKey, "auto-idempotency-key", false, "generate a fresh idempotency key")
	}
	payoutMobileCmd.Flags().StringVar(&payoutFlags.recipientPhone, "phone", "", "recipient phone number (255XXXXXXXXX)")
	payoutBankCmd.Flags().StringVar(&payoutFlags.recipientBank, "bank", "", "recipient bank code (e.g. CRDB, NMB)")
	payoutBankCmd.Flags().StringVar(&payoutFlags.recipientAccount, "account", "", "recipient bank account number")

	payoutFeeCmd.Flags().Int64Var(&payoutFlags.amount, "amount", 0, "amount in the currency's smallest unit")

	payoutListCmd.Flags().IntVar(&payoutListFlags.limit, "limit", 20, "results per page")
	payoutListCmd.Flags().IntVar(&payoutListFlags.offset, "offset", 0, "pagination offset")

	payoutCmd.AddCommand(payoutMobileCmd, payoutBankCmd, payoutGetCmd, payoutListCmd, payoutFeeCmd)
	rootCmd.AddCommand(payoutCmd)
}

func payoutIdempotencyKey() string {
	if payoutFlags.idempotencyKey != "" {
		return payoutFlags.idempotencyKey
	}
	if payoutFlags.autoKey {
		return client.NewIdempotencyKey()
	}
	return ""
}
