package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/prompt"
	"github.com/vaultpass/passgen-go/internal/service"
)

const cliClient = "cli"

type generateOptions struct {
	capitals int
	digits   int
	symbols  int
	count    int
	copy     bool
	hash     bool
}

// register adds the output flags every generating command shares.
func (o *generateOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.count, "count", "n", 1, "Number of passwords to generate")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&o.hash, "hash", false, "Also print an Argon2id hash of each password")
}

func autoCmd(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Generate a password from the default profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.GenerateRequest{Count: opts.count, Hash: opts.hash}
			return a.generate(cmd, req, opts.copy || a.cfg.Profile.Copy)
		},
	}
	opts.register(cmd)
	return cmd
}

func interactiveCmd(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Prompt for the password requirements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
			prof, _, err := p.Requirements(a.cfg.Profile)
			if err != nil {
				return err
			}

			req := model.GenerateRequest{
				Length:   &prof.Length,
				Capitals: &prof.Capitals,
				Digits:   &prof.Digits,
				Symbols:  &prof.Symbols,
				Count:    opts.count,
				Hash:     opts.hash,
			}
			return a.generate(cmd, req, opts.copy || prof.Copy)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) runFlags(cmd *cobra.Command, length int, opts generateOptions) error {
	req := model.GenerateRequest{
		Length:   &length,
		Capitals: &opts.capitals,
		Digits:   &opts.digits,
		Symbols:  &opts.symbols,
		Count:    opts.count,
		Hash:     opts.hash,
	}
	return a.generate(cmd, req, opts.copy)
}

func (a *app) generator() *crypto.Generator {
	return crypto.NewGenerator(a.src)
}

// generate runs req through the generation service, prints the passwords and
// optionally copies them. Nothing is printed or copied when req is invalid.
func (a *app) generate(cmd *cobra.Command, req model.GenerateRequest, copyResult bool) error {
	svc := service.NewGeneratorService(a.generator(), a.cfg.Profile, service.Limits{
		MaxLength: a.cfg.MaxLength,
		MaxCount:  a.cfg.MaxCount,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := svc.Generate(ctx, cliClient, req)
	if err != nil {
		return err
	}

	printPasswords(cmd.OutOrStdout(), resp)
	slog.Debug("generated passwords", "count", len(resp.Passwords), "length", resp.Length)

	if copyResult {
		a.copyToClipboard(cmd.ErrOrStderr(), strings.Join(resp.Passwords, "\n"))
	}
	return nil
}

func printPasswords(w io.Writer, resp model.GenerateResponse) {
	for i, p := range resp.Passwords {
		if i < len(resp.Hashes) {
			fmt.Fprintf(w, "%s\t%s\n", p, resp.Hashes[i])
			continue
		}
		fmt.Fprintln(w, p)
	}
}

// copyToClipboard never fails the command; problems are reported on w.
func (a *app) copyToClipboard(w io.Writer, text string) {
	if a.clip == nil {
		fmt.Fprintln(w, "Clipboard is not available.")
		return
	}

	copied, err := a.clip.Copy(text)
	switch {
	case err != nil:
		slog.Warn("copying to clipboard failed", "error", err)
		fmt.Fprintln(w, "Could not copy to the clipboard.")
	case !copied:
		fmt.Fprintln(w, "Clipboard is not available.")
	default:
		fmt.Fprintln(w, "Copied to clipboard.")
	}
}

func parseLength(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: must be a whole number", arg)
	}
	return n, nil
}
