package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nctl-dev/nctl/namecheap"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account funds and pricing",
	}
	cmd.AddCommand(
		newAccountBalanceCmd(app),
		newAccountPricingCmd(app),
	)
	return cmd
}

func newAccountBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var balance namecheap.AccountBalance
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				balance, err = c.Users.GetBalances(ctx)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, balance)
			}
			rows := [][]string{
				{"Available", fmt.Sprintf("%.2f %s", float64(balance.AvailableBalance), balance.Currency)},
				{"Total", fmt.Sprintf("%.2f %s", float64(balance.AccountBalance), balance.Currency)},
				{"Auto-renew needs", fmt.Sprintf("%.2f %s", float64(balance.FundsRequiredForAutoRenew), balance.Currency)},
			}
			printTable(app.stdout, []string{"FIELD", "VALUE"}, rows)
			return nil
		},
	}
}

func newAccountPricingCmd(app *App) *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "pricing TLD",
		Short: "Show domain pricing for a TLD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			tld := strings.TrimPrefix(strings.ToLower(args[0]), ".")
			ctx := cmd.Context()
			var pricing namecheap.Pricing
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				pricing, err = c.Users.GetPricing(ctx, "DOMAIN", strings.ToUpper(action), tld)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, pricing)
			}

			var rows [][]string
			for _, pt := range pricing.ProductTypes {
				for _, cat := range pt.Categories {
					for _, prod := range cat.Products {
						if !strings.EqualFold(prod.Name, tld) {
							continue
						}
						for _, price := range prod.Prices {
							rows = append(rows, []string{
								cat.Name,
								strconv.Itoa(price.Duration) + " " + strings.ToLower(price.DurationType),
								fmt.Sprintf("%.2f", float64(price.YourPrice)),
								fmt.Sprintf("%.2f", float64(price.RegularPrice)),
								price.Currency,
							})
						}
					}
				}
			}
			if len(rows) == 0 {
				return &namecheap.ValidationError{Field: "tld", Reason: fmt.Sprintf("no pricing found for %q", tld)}
			}
			printTable(app.stdout, []string{"ACTION", "DURATION", "YOUR PRICE", "REGULAR", "CURRENCY"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "REGISTER", "pricing action: REGISTER|RENEW|TRANSFER")
	return cmd
}
