package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const envTemplate = `# Namecheap API credentials. Enable API access and whitelist your IP at
# https://ap.www.namecheap.com/settings/tools/apiaccess/ first.
NAMECHEAP_API_USER=
NAMECHEAP_API_KEY=
NAMECHEAP_USERNAME=
# Leave empty to auto-detect your public IP.
NAMECHEAP_CLIENT_IP=
# Sandbox is the default; set to false once your production key works.
NAMECHEAP_USE_SANDBOX=true
`

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nctl configuration",
	}
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a credentials template to .env",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.WriteFile(path, []byte(envTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "wrote %s, fill in your credentials\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", ".env", "where to write the template")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
