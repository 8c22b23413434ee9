// Package commands wires the protocol operations to a cobra CLI. The
// agent invokes one subcommand per operation and feeds the request stream
// on stdin.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zypperops/zyppmod/logger"
	"github.com/zypperops/zyppmod/zyppmod/adapter"
	"github.com/zypperops/zyppmod/zyppmod/commandmanager"
	"github.com/zypperops/zyppmod/zyppmod/config"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:           "zyppmod",
	Short:         "zypper/RPM package module speaking the key=value agent protocol",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append log output to this file instead of stderr")

	rootCmd.AddCommand(
		newGetPackageDataCmd(),
		newListInstalledCmd(),
		newListUpdatesCmd(),
		newListUpdatesLocalCmd(),
		newRepoInstallCmd(),
		newRemoveCmd(),
		newFileInstallCmd(),
	)
}

// Execute runs the CLI and returns the process exit code. Operation exit
// codes pass through unchanged; cobra-level problems (unknown subcommand,
// bad flags) map to 2.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func newAdapter() (*adapter.Adapter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logOut := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logOut = f
	}
	log := logger.New(logOut, cfg.LogLevel)

	return adapter.New(&commandmanager.UnixCommandManager{}, cfg, log), nil
}

// runOp adapts an operation returning an exit code to cobra's RunE.
func runOp(op func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newAdapter()
		if err != nil {
			return err
		}
		if code := op(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout()); code != 0 {
			return &exitError{code: code}
		}
		return nil
	}
}
