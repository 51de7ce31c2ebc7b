// Package shortcode generates the public codes that identify a form attachment
// in shareable submission links, in the style of meeting links ("d-cba1-zl00-5").
package shortcode

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Generator produces attachment codes. Global uniqueness is enforced by the
// storage index; the generator only avoids repeats within one batch.
type Generator struct {
	rand func() float64
	now  func() time.Time
}

// New returns a generator backed by math/rand and the wall clock
func New() *Generator {
	return &Generator{rand: rand.Float64, now: time.Now}
}

// NewWithSource returns a generator with injected random and clock sources
func NewWithSource(random func() float64, now func() time.Time) *Generator {
	return &Generator{rand: random, now: now}
}

// Generate returns one code
func (g *Generator) Generate() string {
	prefix := strconv.FormatInt(int64(math.Round(g.rand()*1000)), 10)
	raw := prefix + strconv.FormatInt(g.now().UnixMilli(), 36)

	var b strings.Builder
	b.Grow(len(raw) + len(raw)/4 + 1)
	for i := len(raw) - 1; i >= 0; i-- {
		if i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// GenerateBatch returns n codes that are distinct from each other.
// Sources that keep repeating are retried a bounded number of times.
func (g *Generator) GenerateBatch(n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		code := g.Generate()
		for attempt := 0; attempt < maxRetries; attempt++ {
			if _, dup := seen[code]; !dup {
				break
			}
			code = g.Generate()
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

const maxRetries = 16
