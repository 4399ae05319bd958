// Package draw implements the weighted random selection behind every spin.
package draw

import (
	"math/rand"

	"spinwheel/internal/models"
)

// Picker performs independent, identically distributed weighted draws over a
// prize pool. It holds no state besides its random source; every draw is a
// pure function of the supplied pool.
type Picker struct {
	rnd func() float64
}

// New returns a Picker using rnd as its uniform [0,1) source. A nil rnd falls
// back to the shared math/rand generator; tests inject a seeded source for
// reproducible sequences.
func New(rnd func() float64) *Picker {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Picker{rnd: rnd}
}

// Eligible filters the pool to entries with strictly positive weight. Zero or
// negative weights have exactly zero probability regardless of how they got
// into the stored config.
func Eligible(prizes []models.Prize) []models.Prize {
	out := make([]models.Prize, 0, len(prizes))
	for _, p := range prizes {
		if p.Weight > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Pick draws one name from the pool. The walk subtracts each weight from a
// remainder sampled in [0, total) and selects where the remainder reaches
// <= 0 (boundary-inclusive, same convention throughout). An empty pool yields
// the unnamed sentinel rather than an error.
func (p *Picker) Pick(pool []models.Prize) string {
	list := Eligible(pool)
	if len(list) == 0 {
		return models.UnnamedPrize
	}
	var total float64
	for _, prize := range list {
		total += prize.Weight
	}
	remainder := p.rnd() * total
	for _, prize := range list {
		remainder -= prize.Weight
		if remainder <= 0 {
			return nameOrUnnamed(prize.Name)
		}
	}
	// Float accumulation can leave a sliver of remainder past the last entry.
	return nameOrUnnamed(list[len(list)-1].Name)
}

// PickN draws count independent names; the same prize may repeat within one
// batch (no without-replacement semantics).
func (p *Picker) PickN(pool []models.Prize, count int) []string {
	if count < 1 {
		count = 1
	}
	results := make([]string, 0, count)
	for i := 0; i < count; i++ {
		results = append(results, p.Pick(pool))
	}
	return results
}

func nameOrUnnamed(name string) string {
	if name == "" {
		return models.UnnamedPrize
	}
	return name
}
