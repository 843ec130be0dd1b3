package model

import "github.com/vaultpass/passgen-go/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer ints distinguish a missing field from an explicit zero: when Length is
// nil the default profile fills Length and every missing count, otherwise
// missing counts are zero.
type GenerateRequest struct {
	Length   *int `json:"length"`
	Capitals *int `json:"capitals"`
	Digits   *int `json:"digits"`
	Symbols  *int `json:"symbols"`
	Count    int  `json:"count"`
	Hash     bool `json:"hash"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords    []string            `json:"passwords"`
	Hashes       []string            `json:"hashes,omitempty"`
	Length       int                 `json:"length"`
	Requirements crypto.Requirements `json:"requirements"`
}
