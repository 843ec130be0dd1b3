// Package prompt asks for password requirements on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

var ErrNoInput = errors.New("input ended before all answers were given")

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Int asks for a non-negative integer. An empty answer accepts def.
func (p *Prompter) Int(label string, def int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s [%d]: ", label, def)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}

		n, err := strconv.Atoi(line)
		if err == nil && n >= 0 {
			return n, nil
		}
		fmt.Fprintln(p.out, "Please enter a non-negative whole number.")
	}
}

// Confirm asks a yes/no question. An empty answer accepts def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Requirements asks for a whole profile, starting from def. Counts that do not
// fit in the length are asked again.
func (p *Prompter) Requirements(def config.Profile) (config.Profile, crypto.Requirements, error) {
	fmt.Fprintln(p.out, "=== Password Generator (interactive mode) ===")

	var prof config.Profile
	var err error

	if prof.Length, err = p.Int("Password length", def.Length); err != nil {
		return config.Profile{}, crypto.Requirements{}, err
	}

	for {
		if prof.Capitals, err = p.Int("Capital letters", fit(def.Capitals, prof.Length)); err != nil {
			return config.Profile{}, crypto.Requirements{}, err
		}
		if prof.Digits, err = p.Int("Digits", fit(def.Digits, prof.Length-prof.Capitals)); err != nil {
			return config.Profile{}, crypto.Requirements{}, err
		}
		if prof.Symbols, err = p.Int("Symbols (!@#$%^&*)", fit(def.Symbols, prof.Length-prof.Capitals-prof.Digits)); err != nil {
			return config.Profile{}, crypto.Requirements{}, err
		}

		req, err := prof.Requirements()
		if err == nil {
			if prof.Copy, err = p.Confirm("Copy to clipboard?", def.Copy); err != nil {
				return config.Profile{}, crypto.Requirements{}, err
			}
			return prof, req, nil
		}
		if !errors.Is(err, crypto.ErrRequirementsOverflow) {
			return config.Profile{}, crypto.Requirements{}, err
		}
		fmt.Fprintf(p.out, "Error: %v. Try again.\n", err)
	}
}

// fit shrinks a default count to the room left in the password.
func fit(def, room int) int {
	return max(min(def, room), 0)
}
