package placer

import "math/rand"

// seededRNG wraps math/rand.Rand seeded deterministically, matching the
// teacher's use of math/rand.NewSource for repeatable terrain
// (chunk-server/internal/terrain/noise.go) rather than crypto/rand.
type seededRNG struct {
	r *rand.Rand
}

func newSeededRNG(seed int64) *seededRNG {
	return &seededRNG{r: rand.New(rand.NewSource(seed))}
}

// NextRotation draws the next value and maps it to one of {0, 90, 180, 270}.
func (s *seededRNG) NextRotation() int {
	return (s.r.Int() % 4) * 90
}

// NextOffset draws a bounded signed offset in [-max, max].
func (s *seededRNG) NextOffset(max int) int {
	if max <= 0 {
		return 0
	}
	return s.r.Intn(2*max+1) - max
}

// NextIntn draws a value in [0, n).
func (s *seededRNG) NextIntn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// ShuffleStrings deterministically permutes ids in place using this RNG,
// matching rand.Rand.Shuffle's Fisher-Yates algorithm.
func (s *seededRNG) ShuffleStrings(ids []string) {
	s.r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}
