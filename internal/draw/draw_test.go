package draw

import (
	"math"
	"math/rand"
	"testing"

	"spinwheel/internal/models"
)

func seeded(seed int64) func() float64 {
	r := rand.New(rand.NewSource(seed))
	return r.Float64
}

func TestPickDeterministicWithSeed(t *testing.T) {
	pool := []models.Prize{
		{Name: "A", Weight: 1},
		{Name: "B", Weight: 2},
		{Name: "C", Weight: 0.5},
	}
	first := New(seeded(7)).PickN(pool, 50)
	second := New(seeded(7)).PickN(pool, 50)
	if len(first) != 50 || len(second) != 50 {
		t.Fatalf("expected 50 results, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d diverged: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestZeroWeightNeverSelected(t *testing.T) {
	pool := []models.Prize{
		{Name: "A", Weight: 1},
		{Name: "B", Weight: 1},
		{Name: "C", Weight: 0},
		{Name: "D", Weight: -3},
	}
	p := New(seeded(1))
	for _, name := range p.PickN(pool, 5000) {
		if name != "A" && name != "B" {
			t.Fatalf("ineligible prize selected: %q", name)
		}
	}
}

func TestDistributionMatchesWeights(t *testing.T) {
	pool := []models.Prize{
		{Name: "common", Weight: 3},
		{Name: "rare", Weight: 1},
	}
	p := New(seeded(99))
	const n = 100000
	counts := map[string]int{}
	for _, name := range p.PickN(pool, n) {
		counts[name]++
	}
	got := float64(counts["rare"]) / n
	if math.Abs(got-0.25) > 0.01 {
		t.Fatalf("rare frequency %.4f, want 0.25 ± 0.01", got)
	}
}

func TestEmptyPoolReturnsSentinel(t *testing.T) {
	p := New(seeded(1))
	pools := [][]models.Prize{
		nil,
		{},
		{{Name: "dead", Weight: 0}},
	}
	for _, pool := range pools {
		for _, name := range p.PickN(pool, 3) {
			if name != models.UnnamedPrize {
				t.Fatalf("expected sentinel for empty pool, got %q", name)
			}
		}
	}
}

func TestFractionalWeights(t *testing.T) {
	pool := []models.Prize{
		{Name: "tiny", Weight: 0.05},
		{Name: "big", Weight: 99.95},
	}
	p := New(seeded(5))
	counts := map[string]int{}
	for _, name := range p.PickN(pool, 100000) {
		counts[name]++
	}
	if counts["tiny"] == 0 {
		t.Fatalf("fractional weight never selected")
	}
	if got := float64(counts["tiny"]) / 100000; got > 0.005 {
		t.Fatalf("tiny frequency %.5f, want ~0.0005", got)
	}
}

func TestPickNClampsCount(t *testing.T) {
	pool := []models.Prize{{Name: "A", Weight: 1}}
	if got := len(New(seeded(1)).PickN(pool, 0)); got != 1 {
		t.Fatalf("count 0 should yield 1 draw, got %d", got)
	}
	if got := len(New(seeded(1)).PickN(pool, -5)); got != 1 {
		t.Fatalf("negative count should yield 1 draw, got %d", got)
	}
}
