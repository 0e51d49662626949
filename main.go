package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mule-ai/smoke/internal/config"
	"github.com/mule-ai/smoke/internal/smoke"
	"github.com/mule-ai/smoke/pkg/log"
)

// newRootCmd wires a command around v so tests can point the run at a local
// server. Only the logging keys are reachable from flags and the environment.
func newRootCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Send one prompt to the local generate endpoint and print the reply",
		Long: `smoke posts {"prompt": "Hello from smoke test"} to http://localhost:8000/generate
and prints the response status and body, or the error that prevented a response.
The exit code does not depend on the outcome.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			l, err := log.New(cfg.LogOptions())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			outcome := smoke.NewRunner(cfg, l).Run(cmd.Context())
			if err := smoke.Report(stdout, outcome); err != nil {
				l.Error(err, "Error writing report")
			}
			return nil
		},
	}

	cmd.PersistentFlags().String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(config.KeyLogFile, "", "Write logs to this file instead of stderr")
	_ = v.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup(config.KeyLogLevel))
	_ = v.BindPFlag(config.KeyLogFile, cmd.PersistentFlags().Lookup(config.KeyLogFile))
	_ = v.BindEnv(config.KeyLogLevel)
	_ = v.BindEnv(config.KeyLogFile)

	return cmd
}

func main() {
	if err := newRootCmd(viper.New(), os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
