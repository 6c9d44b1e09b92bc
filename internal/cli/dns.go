package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nctl-dev/nctl/internal/recordfile"
	"github.com/nctl-dev/nctl/namecheap"
)

func newDNSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage host records and nameservers",
	}
	cmd.AddCommand(
		newDNSListCmd(app),
		newDNSAddCmd(app),
		newDNSDeleteCmd(app),
		newDNSNSCmd(app),
		newDNSSetNSCmd(app),
		newDNSResetNSCmd(app),
		newDNSExportCmd(app),
		newDNSImportCmd(app),
		newDNSApplyCmd(app),
	)
	return cmd
}

func recordRows(records []namecheap.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		pref := ""
		if r.Type == namecheap.TypeMX || r.Type == namecheap.TypeSRV {
			pref = strconv.Itoa(r.MXPref)
		}
		rows = append(rows, []string{
			string(r.Type), r.Name, r.Address, strconv.Itoa(r.TTL), pref,
		})
	}
	return rows
}

func newDNSListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list DOMAIN",
		Short: "List host records for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var records []namecheap.Record
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				records, err = c.DNS.GetHosts(ctx, args[0])
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, records)
			}
			printTable(app.stdout, []string{"TYPE", "NAME", "ADDRESS", "TTL", "PRIO"}, recordRows(records))
			return nil
		},
	}
}

func newDNSAddCmd(app *App) *cobra.Command {
	var (
		typ, name, address string
		ttl, priority      int
	)
	cmd := &cobra.Command{
		Use:   "add DOMAIN",
		Short: "Add one host record, keeping all existing records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			rec := namecheap.Record{
				Name:    name,
				Type:    namecheap.RecordType(strings.ToUpper(typ)),
				Address: address,
				TTL:     ttl,
				MXPref:  priority,
			}
			ctx := cmd.Context()
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				return c.DNS.AddRecord(ctx, args[0], rec)
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "added %s %s -> %s\n", rec.Type, rec.Name, rec.Address)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "record type (A, AAAA, CNAME, MX, NS, TXT, URL, URL301, FRAME, SRV)")
	cmd.Flags().StringVar(&name, "name", "", "host name relative to the domain, @ for the apex")
	cmd.Flags().StringVar(&address, "value", "", "record value")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "ttl in seconds (default 1799, the registrar's automatic value)")
	cmd.Flags().IntVar(&priority, "priority", 0, "MX/SRV priority")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newDNSDeleteCmd(app *App) *cobra.Command {
	var typ, name, address string
	cmd := &cobra.Command{
		Use:   "delete DOMAIN",
		Short: "Delete host records matching the given filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			filter := namecheap.RecordFilter{
				Name:    name,
				Type:    namecheap.RecordType(strings.ToUpper(typ)),
				Address: address,
			}
			ctx := cmd.Context()
			var deleted int
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				deleted, err = c.DNS.DeleteRecords(ctx, args[0], filter)
				return err
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "deleted %d record(s)\n", deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "match record type")
	cmd.Flags().StringVar(&name, "name", "", "match host name")
	cmd.Flags().StringVar(&address, "value", "", "match record value")
	return cmd
}

func newDNSNSCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ns DOMAIN",
		Short: "Show the domain's nameservers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var ns namecheap.Nameservers
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				ns, err = c.DNS.GetNameservers(ctx, args[0])
				return err
			}); err != nil {
				return err
			}
			if app.output() == "json" {
				return printJSON(app.stdout, ns)
			}
			kind := "custom"
			if ns.IsDefault {
				kind = "registrar default"
			}
			fmt.Fprintf(app.stdout, "%s (%s)\n", args[0], kind)
			for _, h := range ns.Hosts {
				fmt.Fprintln(app.stdout, "  "+h)
			}
			return nil
		},
	}
}

func newDNSSetNSCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-ns DOMAIN NAMESERVER...",
		Short: "Point the domain at custom nameservers (1-5)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withRetry(ctx, app.retries(), app.log, func() error {
				return c.DNS.SetCustomNameservers(ctx, args[0], args[1:])
			})
		},
	}
}

func newDNSResetNSCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-ns DOMAIN",
		Short: "Point the domain back at the registrar's default DNS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withRetry(ctx, app.retries(), app.log, func() error {
				return c.DNS.SetDefaultNameservers(ctx, args[0])
			})
		},
	}
}

func newDNSExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export DOMAIN [FILE]",
		Short: "Export host records to a file or stdout",
		Long: "Export host records. A FILE ending in .json gets the JSON document\n" +
			"format; any other FILE (or stdout) gets the text table. Both formats\n" +
			"import and apply cleanly.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var records []namecheap.Record
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				records, err = c.DNS.GetHosts(ctx, args[0])
				return err
			}); err != nil {
				return err
			}

			if len(args) == 2 {
				path := args[1]
				if strings.EqualFold(filepath.Ext(path), ".json") {
					return recordfile.WriteJSON(path, recordfile.FromRecords(args[0], records))
				}
				return writeFile(path, recordfile.Render(args[0], records))
			}
			if app.output() == "json" {
				return printJSON(app.stdout, recordfile.FromRecords(args[0], records))
			}
			_, err = io.WriteString(app.stdout, recordfile.Render(args[0], records))
			return err
		},
	}
}

func newDNSImportCmd(app *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import DOMAIN FILE",
		Short: "Replace all host records with the contents of a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := loadRecordFile(app, args[1])
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(app.stdout, "would replace all records of %s with %d record(s):\n", args[0], len(desired))
				printTable(app.stdout, []string{"TYPE", "NAME", "ADDRESS", "TTL", "PRIO"}, recordRows(desired))
				return nil
			}
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				return c.DNS.SetHosts(ctx, args[0], desired)
			}); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "replaced records of %s with %d record(s)\n", args[0], len(desired))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the records without submitting")
	return cmd
}

func newDNSApplyCmd(app *App) *cobra.Command {
	var (
		dryRun bool
		prune  bool
	)
	cmd := &cobra.Command{
		Use:   "apply DOMAIN FILE",
		Short: "Reconcile live host records with a records file",
		Long: "Reconcile live records with a file: records in the file are created or\n" +
			"updated, records only on the registrar are kept unless --prune. Every\n" +
			"submit replaces the full set, so the plan is printed before anything\n" +
			"is sent.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := loadRecordFile(app, args[1])
			if err != nil {
				return err
			}

			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var current []namecheap.Record
			if err := withRetry(ctx, app.retries(), app.log, func() error {
				var err error
				current, err = c.DNS.GetHosts(ctx, args[0])
				return err
			}); err != nil {
				return err
			}

			merged := desired
			if !prune {
				listed := make(map[string]bool, len(desired))
				for _, r := range desired {
					listed[r.Key()] = true
				}
				for _, r := range current {
					if !listed[r.Key()] {
						merged = append(merged, r)
					}
				}
			}

			diff := recordfile.Compare(current, merged)
			printPlan(app.stdout, args[0], diff)
			if diff.Empty() {
				return nil
			}
			if dryRun {
				return nil
			}

			if err := withRetry(ctx, app.retries(), app.log, func() error {
				return c.DNS.SetHosts(ctx, args[0], merged)
			}); err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, "applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without submitting")
	cmd.Flags().BoolVar(&prune, "prune", false, "delete live records not listed in the file")
	return cmd
}

// loadRecordFile reads a records file in either format, surfacing parse
// issues on stderr; error-level issues fail the command.
func loadRecordFile(app *App, path string) ([]namecheap.Record, error) {
	f, issues, err := recordfile.Load(path)
	if err != nil {
		return nil, err
	}
	hadErrors := false
	for _, is := range issues {
		fmt.Fprintf(app.stderr, "%s:%d: %s: %s\n", path, is.Line, is.Level, is.Message)
		if is.Level == "error" {
			hadErrors = true
		}
	}
	if hadErrors {
		return nil, &namecheap.ValidationError{Field: "file", Reason: "records file has errors"}
	}
	return f.ToRecords()
}

func printPlan(w io.Writer, domain string, d recordfile.Diff) {
	fmt.Fprintf(w, "plan for %s: +%d -%d =%d\n", domain, len(d.Add), len(d.Remove), len(d.Keep))
	for _, r := range d.Remove {
		fmt.Fprintln(w, dimStyle.Render(planLine("-", r)))
	}
	for _, r := range d.Add {
		fmt.Fprintln(w, planLine("+", r))
	}
	if d.Empty() {
		fmt.Fprintln(w, "no changes")
	}
}

func planLine(sign string, r namecheap.Record) string {
	line := fmt.Sprintf("%s %s %s %s ttl=%d", sign, r.Type, r.Name, r.Address, r.TTL)
	if r.Type == namecheap.TypeMX || r.Type == namecheap.TypeSRV {
		line += fmt.Sprintf(" prio=%d", r.MXPref)
	}
	return line
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
