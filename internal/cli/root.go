// Package cli implements the nctl command tree on cobra, with viper for
// flag/env/file configuration. Commands stay thin: resolve settings,
// build a client, call the SDK, render.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nctl-dev/nctl/namecheap"
)

// App carries the shared state of one CLI invocation. Tests swap out the
// writers and the client factory.
type App struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger

	// newClient builds the API client on first use; overridable in tests.
	newClient func(a *App) (*namecheap.Client, error)
	client    *namecheap.Client
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	app := &App{
		v:         viper.New(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newClient: buildClient,
	}
	root := NewRoot(app)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(app.stderr, "error:", err)
		return ExitCode(err)
	}
	return ExitOK
}

// NewRoot builds the full command tree.
func NewRoot(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "nctl",
		Short:         "Manage Namecheap domains, DNS records and WHOIS privacy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.config/nctl/config.yaml)")
	pf.Bool("sandbox", false, "use the registrar sandbox endpoint")
	pf.StringP("output", "o", "table", "output format: table|json")
	pf.BoolP("verbose", "v", false, "debug logging on stderr")
	pf.Int("retries", 2, "retries for transient transport and rate limit errors")
	pf.Duration("timeout", namecheap.DefaultTimeout, "per-request timeout")

	root.AddCommand(
		newDomainCmd(app),
		newDNSCmd(app),
		newPrivacyCmd(app),
		newAccountCmd(app),
		newConfigCmd(app),
		newTUICmd(app),
	)
	return root
}

// init resolves settings once per invocation: .env file, NCTL_* env vars,
// optional config file, then flags on top.
func (a *App) init(cmd *cobra.Command) error {
	// Missing .env is fine; real env vars win over file values.
	_ = godotenv.Load()

	a.v.SetEnvPrefix("NCTL")
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	cfgFile := a.v.GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(filepath.Join(home, ".config", "nctl"))
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// Client returns the API client, building it on first use.
func (a *App) Client() (*namecheap.Client, error) {
	if a.client == nil {
		c, err := a.newClient(a)
		if err != nil {
			return nil, err
		}
		a.client = c
	}
	return a.client, nil
}

func buildClient(a *App) (*namecheap.Client, error) {
	pick := func(viperKey, envKey string) string {
		if s := a.v.GetString(viperKey); s != "" {
			return s
		}
		return os.Getenv(envKey)
	}

	opts := namecheap.Options{
		APIUser:  pick("api_user", "NAMECHEAP_API_USER"),
		APIKey:   pick("api_key", "NAMECHEAP_API_KEY"),
		UserName: pick("username", "NAMECHEAP_USERNAME"),
		ClientIP: pick("client_ip", "NAMECHEAP_CLIENT_IP"),
		Sandbox:  a.v.GetBool("sandbox"),
		Timeout:  a.v.GetDuration("timeout"),
		Logger:   a.log,
	}
	if !a.v.IsSet("sandbox") {
		if v, ok := os.LookupEnv("NAMECHEAP_USE_SANDBOX"); ok {
			opts.Sandbox = v == "true" || v == "yes" || v == "1"
		}
	}

	if opts.ClientIP == "" && opts.APIUser != "" && opts.APIKey != "" && opts.UserName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ip, err := namecheap.DetectClientIP(ctx)
		if err != nil {
			return nil, err
		}
		a.log.Debug("detected client ip", "ip", ip)
		opts.ClientIP = ip
	}

	return namecheap.New(opts)
}

func (a *App) output() string { return a.v.GetString("output") }
func (a *App) retries() int   { return a.v.GetInt("retries") }
