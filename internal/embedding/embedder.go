package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Embedder computes free-text embedding vectors. The engine never computes
// embeddings itself; implementations wrap whatever external model the hosting
// service is configured with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
	Model() string
}

// ContentHash derives the cache key for a piece of text. Whitespace runs and
// letter case do not affect the key.
func ContentHash(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
