package crypto

import (
	"crypto/rand"
	"math/big"
)

// Source yields uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type secureSource struct{}

// SecureSource returns a Source backed by crypto/rand. It is safe for concurrent use.
func SecureSource() Source {
	return secureSource{}
}

func (secureSource) IntN(n int) int {
	if n <= 0 {
		panic("crypto: invalid argument to IntN")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader does not return errors since Go 1.24.
		panic("crypto: reading random source: " + err.Error())
	}
	return int(v.Int64())
}
