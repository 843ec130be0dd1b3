// Package main provides the passgen binary entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

const (
	Version = "0.1.0"
	appName = "passgen"
)

// app carries the collaborators the commands share. Tests replace src and clip.
type app struct {
	cfg  config.Config
	src  crypto.Source
	clip clipboard.Clipboard
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("reading .env file failed, using environment variables", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, clip: clipboard.System()}
	if err := rootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	var (
		logLevel string
		opts     generateOptions
	)

	cmd := &cobra.Command{
		Use:   "passgen LENGTH",
		Short: "Generate random passwords",
		Long: `passgen generates random passwords of a given length.

Capitals, digits and symbols (!@#$%^&*) are placed in the exact counts
requested, the rest of the password is filled with lowercase letters, and
the result is shuffled.`,
		Example: `  passgen 16 -c 2 -d 2 -s 2
  passgen 24 --copy
  passgen auto
  passgen interactive`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			setupLogging(logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parseLength(args[0])
			if err != nil {
				return err
			}
			return a.runFlags(cmd, length, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")
	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.capitals, "capitals", "c", 0, "Number of capital letters")
	cmd.Flags().IntVarP(&opts.digits, "digits", "d", 0, "Number of digits")
	cmd.Flags().IntVarP(&opts.symbols, "symbols", "s", 0, "Number of symbols (!@#$%^&*)")

	cmd.AddCommand(
		autoCmd(a),
		interactiveCmd(a),
		serveCmd(a),
		tokenCmd(a),
		verifyCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
