package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nctl-dev/nctl/namecheap"
)

func newPrivacyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privacy",
		Short: "Manage WHOIS privacy (WhoisGuard) subscriptions",
	}
	cmd.AddCommand(
		newPrivacyListCmd(app),
		newPrivacyEnableCmd(app),
		newPrivacyDisableCmd(app),
		newPrivacyRenewCmd(app),
		newPrivacyChangeEmailCmd(app),
	)
	return cmd
}

func newPrivacyListCmd(app *App) *cobra.Command {
	var listType string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List privacy subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var entries []namecheap.WhoisguardEntry
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				entries, err = c.Whoisguard.GetList(ctx, namecheap.WhoisguardListType(listType), 1, 100)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.Domain,
					e.Status,
					fmtDate(e.Expires),
				})
			}
			printTable(app.stdout, []string{"ID", "DOMAIN", "STATUS", "EXPIRES"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&listType, "type", "ALL", "filter: ALL|ALLOTED|FREE|DISCARD")
	return cmd
}

func newPrivacyEnableCmd(app *App) *cobra.Command {
	var forwardTo string
	cmd := &cobra.Command{
		Use:   "enable DOMAIN",
		Short: "Enable WHOIS privacy for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				return c.Whoisguard.Enable(ctx, args[0], forwardTo)
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "privacy enabled for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&forwardTo, "email", "", "address masked WHOIS mail forwards to")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPrivacyDisableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "disable DOMAIN",
		Short: "Disable WHOIS privacy for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				return c.Whoisguard.Disable(ctx, args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "privacy disabled for %s\n", args[0])
			return nil
		},
	}
}

func newPrivacyRenewCmd(app *App) *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "renew DOMAIN",
		Short: "Renew the privacy subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var result namecheap.WhoisguardRenewal
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				result, err = c.Whoisguard.Renew(ctx, args[0], years)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, result)
			}
			fmt.Fprintf(app.stdout, "renewed privacy for %s, %d year(s), charged %.2f\n",
				args[0], result.Years, float64(result.ChargedAmount))
			return nil
		},
	}
	cmd.Flags().IntVar(&years, "years", 1, "renewal length in years (1-9)")
	return cmd
}

func newPrivacyChangeEmailCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "change-email DOMAIN",
		Short: "Rotate the masked WHOIS forwarding address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var newEmail, oldEmail string
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				newEmail, oldEmail, err = c.Whoisguard.ChangeEmail(ctx, args[0])
				return err
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "rotated: %s -> %s\n", oldEmail, newEmail)
			return nil
		},
	}
}
