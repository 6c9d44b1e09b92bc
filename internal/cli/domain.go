package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nctl-dev/nctl/namecheap"
)

func newDomainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Query and manage domains in the account",
	}
	cmd.AddCommand(
		newDomainListCmd(app),
		newDomainCheckCmd(app),
		newDomainInfoCmd(app),
		newDomainRegisterCmd(app),
		newDomainRenewCmd(app),
		newDomainLockCmd(app, true),
		newDomainLockCmd(app, false),
		newDomainContactsCmd(app),
		newDomainTldsCmd(app),
	)
	return cmd
}

func fmtDate(d namecheap.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func newDomainListCmd(app *App) *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var domains []namecheap.Domain
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				domains, err = c.Domains.List(ctx, page, pageSize)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, domains)
			}
			rows := make([][]string, 0, len(domains))
			for _, d := range domains {
				rows = append(rows, []string{
					d.Name,
					fmtDate(d.Expires),
					yesNo(d.AutoRenew.Value()),
					yesNo(d.IsLocked.Value()),
					d.WhoisGuard,
				})
			}
			printTable(app.stdout, []string{"NAME", "EXPIRES", "AUTO-RENEW", "LOCKED", "WHOISGUARD"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page (max 100)")
	return cmd
}

func newDomainCheckCmd(app *App) *cobra.Command {
	var withPricing bool
	cmd := &cobra.Command{
		Use:   "check DOMAIN...",
		Short: "Check availability of one or more domains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var results []namecheap.DomainCheck
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				if withPricing {
					results, err = c.Domains.CheckWithPricing(ctx, args...)
				} else {
					results, err = c.Domains.Check(ctx, args...)
				}
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, results)
			}
			headers := []string{"DOMAIN", "AVAILABLE", "PREMIUM"}
			if withPricing {
				headers = append(headers, "PRICE")
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				row := []string{r.Domain, yesNo(r.Available.Value()), yesNo(r.IsPremium.Value())}
				if withPricing {
					price := ""
					if r.YourPrice > 0 {
						price = fmt.Sprintf("%.2f", r.YourPrice)
					}
					row = append(row, price)
				}
				rows = append(rows, row)
			}
			printTable(app.stdout, headers, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withPricing, "pricing", false, "include first-year registration prices")
	return cmd
}

func newDomainInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info DOMAIN",
		Short: "Show details for one domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var info namecheap.DomainInfo
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				info, err = c.Domains.GetInfo(ctx, args[0])
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, info)
			}
			rows := [][]string{
				{"Name", info.Name},
				{"Status", info.Status},
				{"Owner", info.Owner},
				{"Created", fmtDate(info.Created)},
				{"Expires", fmtDate(info.Expires)},
				{"WhoisGuard", yesNo(info.WhoisguardEnabled)},
				{"DNS provider", info.DNSProvider},
			}
			printTable(app.stdout, []string{"FIELD", "VALUE"}, rows)
			return nil
		},
	}
}

func newDomainRegisterCmd(app *App) *cobra.Command {
	var (
		years       int
		protect     bool
		nameservers []string
	)
	cmd := &cobra.Command{
		Use:   "register DOMAIN",
		Short: "Register a new domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var result namecheap.RegisterResult
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				result, err = c.Domains.Register(ctx, args[0], namecheap.RegisterOptions{
					Years:           years,
					WhoisProtection: protect,
					Nameservers:     nameservers,
				})
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, result)
			}
			if !result.Registered.Value() {
				return &namecheap.APIError{Code: "UNKNOWN", Message: "registration was not completed"}
			}
			fmt.Fprintf(app.stdout, "registered %s (order %s, charged %.2f)\n",
				result.Domain, result.OrderID, float64(result.ChargedAmount))
			return nil
		},
	}
	cmd.Flags().IntVar(&years, "years", 1, "registration length in years")
	cmd.Flags().BoolVar(&protect, "whois-protection", true, "enable free WHOIS privacy")
	cmd.Flags().StringSliceVar(&nameservers, "ns", nil, "custom nameservers (max 5)")
	return cmd
}

func newDomainRenewCmd(app *App) *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "renew DOMAIN",
		Short: "Renew a domain registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var result namecheap.RenewResult
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				result, err = c.Domains.Renew(ctx, args[0], years)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, result)
			}
			fmt.Fprintf(app.stdout, "renewed %s until %s (charged %.2f)\n",
				result.Domain, result.ExpireDate, float64(result.ChargedAmount))
			return nil
		},
	}
	cmd.Flags().IntVar(&years, "years", 1, "renewal length in years")
	return cmd
}

func newDomainLockCmd(app *App, lock bool) *cobra.Command {
	use, short := "lock DOMAIN", "Enable the registrar transfer lock"
	if !lock {
		use, short = "unlock DOMAIN", "Disable the registrar transfer lock"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withRetry(ctx, app.retries(), app.log, func() error {
				if lock {
					return c.Domains.Lock(ctx, args[0])
				}
				return c.Domains.Unlock(ctx, args[0])
			})
		},
	}
}

func newDomainContactsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts DOMAIN",
		Short: "Show WHOIS contacts for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var contacts namecheap.DomainContacts
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				contacts, err = c.Domains.GetContacts(ctx, args[0])
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, contacts)
			}
			slots := []struct {
				name    string
				contact namecheap.Contact
			}{
				{"Registrant", contacts.Registrant},
				{"Tech", contacts.Tech},
				{"Admin", contacts.Admin},
				{"AuxBilling", contacts.AuxBilling},
			}
			rows := make([][]string, 0, len(slots))
			for _, s := range slots {
				rows = append(rows, []string{
					s.name,
					s.contact.FirstName + " " + s.contact.LastName,
					s.contact.Email,
					s.contact.Country,
				})
			}
			printTable(app.stdout, []string{"SLOT", "NAME", "EMAIL", "COUNTRY"}, rows)
			return nil
		},
	}
}

func newDomainTldsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tlds",
		Short: "List TLDs supported by the registrar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var tlds []namecheap.Tld
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				tlds, err = c.Domains.GetTldList(ctx)
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, tlds)
			}
			rows := make([][]string, 0, len(tlds))
			for _, t := range tlds {
				rows = append(rows, []string{
					t.Name,
					t.Type,
					strconv.Itoa(t.MinRegisterYears) + "-" + strconv.Itoa(t.MaxRegisterYears),
					yesNo(t.IsApiRegisterable.Value()),
					yesNo(t.IsApiRenewable.Value()),
				})
			}
			printTable(app.stdout, []string{"TLD", "TYPE", "YEARS", "REGISTER", "RENEW"}, rows)
			return nil
		},
	}
}
