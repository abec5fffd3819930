package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnykmshr/taskpool/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// NewRootCmd assembles the taskpool command tree.
func NewRootCmd() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "taskpool",
		Short: "Run tasks on a fixed pool of workers",
		Long: `taskpool drives a fixed-size worker pool with a synthetic workload:
every task sleeps for a random duration, and a summary is printed once the
pool has drained and every worker has been joined.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file; command-line flags take precedence.")

	runCmd, err := newRunCmd()
	if err != nil {
		return nil, err
	}
	configCmd, err := newConfigCmd()
	if err != nil {
		return nil, err
	}
	rootCmd.AddCommand(runCmd, configCmd, newVersionCmd())
	return rootCmd, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskpool version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskpool version %s (%s)\n", version, runtime.Version())
		},
	}
}

// newConfigCmd prints the configuration a run would use.
func newConfigCmd() (*cobra.Command, error) {
	var v *viper.Viper
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			out, err := c.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	var err error
	if v, err = config.BindFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding config flags: %w", err)
	}
	return cmd, nil
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v, configFile)
}
