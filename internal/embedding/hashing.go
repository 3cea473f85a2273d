package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const DefaultHashingDimension = 256

// HashingEmbedder projects text into a fixed-size vector with the feature
// hashing trick: each token hashes to one bucket with a hash-derived sign,
// and the result is L2-normalized. It needs no model service, and identical
// token sets always map to identical vectors, which keeps scoring
// deterministic for deployments without an embeddings endpoint.
type HashingEmbedder struct {
	dimension int
}

func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &HashingEmbedder{dimension: dimension}
}

func (e *HashingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, e.dimension)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?()[]{}\"'")
		if tok == "" {
			continue
		}
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dimension))
		sign := 1.0
		if sum&(1<<63) != 0 {
			sign = -1.0
		}
		vec[bucket] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashingEmbedder) Model() string {
	return "feature-hashing-v1"
}
