package preprocess

import (
	"math/rand/v2"

	"github.com/go-softwarelab/common/pkg/seq"
)

// Flatten concatenates the inner slices in order.
func Flatten[E any](nested [][]E) []E {
	total := 0
	for _, inner := range nested {
		total += len(inner)
	}
	return seq.ToSlice(seq.FlattenSlices(seq.FromSlice(nested)), make([]E, 0, total))
}

// Shuffle returns a uniformly random permutation of values. The result is
// not reproducible.
func Shuffle[E any](values []E) []E {
	out := append(make([]E, 0, len(values)), values...)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ShuffleSeeded returns a permutation of values that depends only on values
// and seed. Each call owns its generator, so concurrent callers never
// influence each other.
func ShuffleSeeded[E any](values []E, seed int64) []E {
	return ShuffleWith(values, rand.New(rand.NewPCG(uint64(seed), seedStream)))
}

// ShuffleWith permutes a copy of values with Fisher-Yates driven by r.
func ShuffleWith[E any](values []E, r *rand.Rand) []E {
	out := append(make([]E, 0, len(values)), values...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

const seedStream = 0x9e3779b97f4a7c15
