package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/snippe-sh/snippe-go/app/client"
	"github.com/snippe-sh/snippe-go/app/types"
	"github.com/spf13/cobra"
)

var payFlags struct {
	amount      int64
	currency    string
	phoneNumber string
	firstname   string
	lastname    string
	email       string

	callbackURL    string
	webhookURL     string
	idempotencyKey string
	autoKey        bool
}

var listFlags struct {
	limit  int
	offset int
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Collect payments",
}

var payMobileCmd = &cobra.Command{
	Use:   "mobile",
	Short: "Create a mobile money payment (USSD push)",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		payment, err := c.CreateMobilePayment(context.Background(), &types.CreateMobilePaymentRequest{
			Amount:         payFlags.amount,
			Currency:       types.Currency(payFlags.currency),
			PhoneNumber:    payFlags.phoneNumber,
			Customer:       customerFromFlags(),
			CallbackURL:    payFlags.callbackURL,
			WebhookURL:     payFlags.webhookURL,
			IdempotencyKey: idempotencyKeyFromFlags(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create mobile payment")
		}
		printJSON(payment)
	},
}

var payCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Create a card payment (hosted redirect)",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		payment, err := c.CreateCardPayment(context.Background(), &types.CreateCardPaymentRequest{
			Amount:         payFlags.amount,
			Currency:       types.Currency(payFlags.currency),
			PhoneNumber:    payFlags.phoneNumber,
			Customer:       customerFromFlags(),
			CallbackURL:    payFlags.callbackURL,
			WebhookURL:     payFlags.webhookURL,
			IdempotencyKey: idempotencyKeyFromFlags(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create card payment")
		}
		printJSON(payment)
	},
}

var payQRCmd = &cobra.Command{
	Use:   "qr",
	Short: "Create a dynamic QR code payment",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		payment, err := c.CreateQRPayment(context.Background(), &types.CreateQRPaymentRequest{
			Amount:         payFlags.amount,
			Currency:       types.Currency(payFlags.currency),
			PhoneNumber:    payFlags.phoneNumber,
			Customer:       customerFromFlags(),
			CallbackURL:    payFlags.callbackURL,
			WebhookURL:     payFlags.webhookURL,
			IdempotencyKey: idempotencyKeyFromFlags(),
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create QR payment")
		}
		printJSON(payment)
	},
}

var payGetCmd = &cobra.Command{
	Use:   "get <reference>",
	Short: "Fetch a payment by reference",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		c := mustNewClient()
		payment, err := c.GetPayment(context.Background(), args[0])
		if err != nil {
			logrus.WithError(err).Fatal("Failed to fetch payment")
		}
		printJSON(payment)
	},
}

var payListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Run: func(_ *cobra.Command, _ []string) {
		c := mustNewClient()
		list, err := c.ListPayments(context.Background(), types.ListOptions{
			Limit:  listFlags.limit,
			Offset: listFlags.offset,
		})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to list payments")
		}
		printJSON(list)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{payMobileCmd, payCardCmd, payQRCmd} {
		cmd.Flags().Int64Var(&payFlags.amount, "amount", 0, "amount in the currency's smallest unit")
		cmd.Flags().StringVar(&payFlags.currency, "currency", "TZS", "currency code (TZS, KES, UGX)")
		cmd.Flags().StringVar(&payFlags.phoneNumber, "phone", "", "customer phone number")
		cmd.Flags().StringVar(&payFlags.firstname, "firstname", "", "customer first name")
		cmd.Flags().StringVar(&payFlags.lastname, "lastname", "", "customer last name")
		cmd.Flags().StringVar(&payFlags.email, "email", "", "customer email")
		cmd.Flags().StringVar(&payFlags.callbackURL, "callback-url", "", "redirect URL after payment")
		cmd.Flags().StringVar(&payFlags.webhookURL, "webhook-url", "", "URL for status webhooks")
		cmd.Flags().StringVar(&payFlags.idempotencyKey, "idempotency-key", "", "idempotency key for the creation call")
		cmd.Flags().BoolVar(&payFlags.autoKey, "auto-idempotency-key", false, "generate a fresh idempotency key")
	}

	payListCmd.Flags().IntVar(&listFlags.limit, "limit", 20, "results per page")
	payListCmd.Flags().IntVar(&listFlags.offset, "offset", 0, "pagination offset")

	payCmd.AddCommand(payMobileCmd, payCardCmd, payQRCmd, payGetCmd, payListCmd)
	rootCmd.AddCommand(payCmd)
}

func customerFromFlags() types.Customer {
	return types.Customer{
		Firstname: payFlags.firstname,
		Lastname:  payFlags.lastname,
		Email:     payFlags.email,
	}
}

func idempotencyKeyFromFlags() string {
	if payFlags.idempotencyKey != "" {
		return payFlags.idempotencyKey
	}
	if payFlags.autoKey {
		return client.NewIdempotencyKey()
	}
	return ""
}
