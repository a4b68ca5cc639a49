package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pepay-io/pepay-go"
)

const envPrefix = "PEPAY"

var errMissingAPIKey = errors.New("no API key: set --api-key, PEPAY_API_KEY or api-key in ~/.pepay.yaml")

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, formatError(err))
		return 1
	}
	return 0
}

// formatError renders API errors as "code: message (status)".
func formatError(err error) string {
	if apiErr, ok := pepay.AsError(err); ok {
		return fmt.Sprintf("%s: %s (%d)", apiErr.Code, apiErr.Message, apiErr.StatusCode)
	}
	return "error: " + err.Error()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "pepay",
		Short:         "pepay - create and inspect Pepay invoices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.SortFlags = false
	flags.StringVar(&cfgFile, "config", "",
		"Full path to a configuration file. Defaults to '$HOME/.pepay.yaml'.")
	flags.String("api-key", "", "Pepay API key.")
	flags.String("base-url", pepay.DefaultBaseURL, "Pepay API origin.")
	flags.Duration("timeout", 0, "Per-request timeout, example: 10s. Zero waits indefinitely.")
	flags.String("log-level", "error", "Log level. Allowed values: debug, info, warn, error.")

	for _, name := range []string{"api-key", "base-url", "timeout", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newInvoicesCmd(v, stderr))

	return root
}

// initConfig reads the config file and PEPAY_* environment variables.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".pepay")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", filepath.Join(home, ".pepay.yaml"), err)
	}
	return nil
}

// newClient builds a client from the resolved flags, environment and config.
func newClient(v *viper.Viper, stderr io.Writer) (*pepay.Client, error) {
	key := v.GetString("api-key")
	if key == "" {
		return nil, errMissingAPIKey
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", v.GetString("log-level"))
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []pepay.Option{
		pepay.WithBaseURL(v.GetString("base-url")),
		pepay.WithLogger(logger),
	}
	if timeout := v.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, pepay.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	return pepay.New(key, opts...), nil
}
