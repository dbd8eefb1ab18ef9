package link

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// CreatePathPrefix is the path under which capture links live.
	CreatePathPrefix = "/create/"

	idLength   = 9
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewID returns a short random base36 token. Uniqueness is probabilistic only; no
// registry of issued ids exists.
func NewID() (string, error) {
	var b strings.Builder
	b.Grow(idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := 0; i < idLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate link id: %w", err)
		}
		b.WriteByte(idAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// CreatePath returns the in-app path for a link id.
func CreatePath(id string) string {
	return CreatePathPrefix + id
}

// Generate returns a full shareable link rooted at origin, e.g.
// https://photos.example.com/create/k3j9x0a2b.
func Generate(origin string) (string, error) {
	id, err := NewID()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(origin, "/") + CreatePath(id), nil
}
