package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

var errNoMatch = errors.New("password does not match hash")

func verifyCmd() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "verify HASH",
		Short: "Check a password read from stdin against an Argon2id hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				return errors.New("no password given on stdin")
			}
			password := strings.TrimRight(scanner.Text(), "\r")

			match, err := crypto.VerifyPassword(password, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats {
				req, unknown := crypto.CountCategories(password)
				fmt.Fprintf(out, "length=%d lowercase=%d capitals=%d digits=%d symbols=%d other=%d\n",
					len([]rune(password)), req.Lowercase, req.Capitals, req.Digits, req.Symbols, unknown)
			}

			if !match {
				fmt.Fprintln(out, "no match")
				return errNoMatch
			}
			fmt.Fprintln(out, "match")
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Also print the password's character category counts")
	return cmd
}
