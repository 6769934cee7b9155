package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alvmarrod/boxmon/internal/config"
	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
	"github.com/alvmarrod/boxmon/internal/metrics"
	"github.com/alvmarrod/boxmon/internal/plugin"
)

// configArg is the argument munin-node passes to ask for graph definitions
const configArg = "config"

// NewRootCmd creates the command for the plugin invoked as name
func NewRootCmd(name string, getenv func(string) string, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [config]",
		Short: "Munin plugin graphing an FTTH router and its ONT",
		Long: `Graphs uptime, port traffic, connected clients and optical signal
intensity of the router. The graph is chosen by the name the plugin is
invoked under (box_uptime, box_speed, box_clients or box_intensity).

Settings are read from the environment: ip, password, hostname, and
optionally username, timeout and log_level.`,
		// munin passes "config" or nothing; anything else means values
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), name, args, getenv, stdout)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func run(ctx context.Context, name string, args []string, getenv func(string) string, stdout io.Writer) error {
	cfg, err := config.Load(getenv)
	if err != nil {
		return err
	}
	logrus.SetLevel(cfg.LogLevel)

	family, err := plugin.ParseFamily(name)
	if err != nil {
		return boxerrors.NewConfigError("cannot select graph", err)
	}

	mode := config.ModeValues
	if len(args) > 0 && args[0] == configArg {
		mode = config.ModeDefinitions
	}

	tracker := metrics.NewTracker()
	defer func() {
		logrus.Debug(tracker.LogProgress())
	}()

	// Buffered so a failure never leaves partial output for munin
	var out bytes.Buffer
	if err := plugin.New(cfg, family, tracker).Run(ctx, mode, &out); err != nil {
		return err
	}

	_, err = stdout.Write(out.Bytes())
	return err
}

// Execute runs the plugin for argv and returns the process exit code
func Execute(argv []string, getenv func(string) string, stdout, stderr io.Writer) int {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := "box"
	if len(argv) > 0 {
		name = filepath.Base(argv[0])
	}

	cmd := NewRootCmd(name, getenv, stdout)
	cmd.SetArgs(argv[min(1, len(argv)):])
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}
