package crypto

import (
	"errors"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*"
)

var (
	ErrRequirementsOverflow = errors.New("the sum of capitals, digits, and symbols exceeds the total length")
	ErrNegativeCount        = errors.New("length and character counts must not be negative")
)

// Requirements holds how many characters of each category a password needs.
type Requirements struct {
	Lowercase int `json:"lowercase"`
	Capitals  int `json:"capitals"`
	Digits    int `json:"digits"`
	Symbols   int `json:"symbols"`
}

// Length returns the total password length the requirements describe.
func (r Requirements) Length() int {
	return r.Lowercase + r.Capitals + r.Digits + r.Symbols
}

// ResolveRequirements validates the requested counts and fills the remainder
// of length with lowercase letters.
func ResolveRequirements(length, capitals, digits, symbols int) (Requirements, error) {
	if length < 0 || capitals < 0 || digits < 0 || symbols < 0 {
		return Requirements{}, ErrNegativeCount
	}

	// Subtract one count at a time so the sum can never overflow.
	remaining := length
	for _, n := range []int{capitals, digits, symbols} {
		if n > remaining {
			return Requirements{}, ErrRequirementsOverflow
		}
		remaining -= n
	}

	return Requirements{
		Lowercase: remaining,
		Capitals:  capitals,
		Digits:    digits,
		Symbols:   symbols,
	}, nil
}

// Generator builds passwords from resolved requirements.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator drawing from src, or from SecureSource when src is nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = SecureSource()
	}
	return &Generator{src: src}
}

// Generate draws each category's characters and shuffles them into one password.
// All-zero requirements produce the empty string.
func (g *Generator) Generate(req Requirements) string {
	buf := make([]byte, 0, max(req.Length(), 0))

	buf = g.sample(buf, lowercaseChars, req.Lowercase)
	buf = g.sample(buf, uppercaseChars, req.Capitals)
	buf = g.sample(buf, digitChars, req.Digits)
	buf = g.sample(buf, symbolChars, req.Symbols)

	g.shuffle(buf)

	return string(buf)
}

// sample appends count characters drawn uniformly, with replacement, from charset.
func (g *Generator) sample(dst []byte, charset string, count int) []byte {
	for i := 0; i < count; i++ {
		dst = append(dst, charset[g.src.IntN(len(charset))])
	}
	return dst
}

// shuffle performs a Fisher-Yates shuffle.
func (g *Generator) shuffle(data []byte) {
	for i := len(data) - 1; i > 0; i-- {
		j := g.src.IntN(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}

// Category is one of the four fixed character classes.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryLowercase
	CategoryCapital
	CategoryDigit
	CategorySymbol
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLowercase:
		return "lowercase"
	case CategoryCapital:
		return "capital"
	case CategoryDigit:
		return "digit"
	case CategorySymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Classify reports which category r belongs to.
func Classify(r rune) Category {
	switch {
	case r >= 'a' && r <= 'z':
		return CategoryLowercase
	case r >= 'A' && r <= 'Z':
		return CategoryCapital
	case r >= '0' && r <= '9':
		return CategoryDigit
	}
	for _, s := range symbolChars {
		if r == s {
			return CategorySymbol
		}
	}
	return CategoryUnknown
}

// CountCategories tallies the characters of s per category. The second return
// value counts characters outside every category.
func CountCategories(s string) (Requirements, int) {
	var req Requirements
	unknown := 0
	for _, r := range s {
		switch Classify(r) {
		case CategoryLowercase:
			req.Lowercase++
		case CategoryCapital:
			req.Capitals++
		case CategoryDigit:
			req.Digits++
		case CategorySymbol:
			req.Symbols++
		default:
			unknown++
		}
	}
	return req, unknown
}
