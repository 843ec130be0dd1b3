package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

func tokenCmd(a *app) *cobra.Command {
	var expiry time.Duration
	cmd := &cobra.Command{
		Use:   "token CLIENT",
		Short: "Issue an API token for the serve command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiry <= 0 {
				return errors.New("--expiry must be positive")
			}

			token, err := crypto.GenerateToken(args[0], a.cfg.JWTSecret, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&expiry, "expiry", a.cfg.JWTExpiry, "Token lifetime, e.g. 1h or 720h")
	return cmd
}
