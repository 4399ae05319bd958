package models

import "strings"

const (
	// MaxPrizeNameLen caps a prize name in runes.
	MaxPrizeNameLen = 50

	// UnnamedPrize is the fallback label for a prize with no usable name and
	// the sentinel returned when the draw pool is empty.
	UnnamedPrize = "未命名"
)

// Prize is one slot on the wheel. Weight is an arbitrary non-negative real;
// fractional weights are allowed.
type Prize struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// WheelConfig is the full prize list. It is replaced wholesale, never patched.
type WheelConfig struct {
	Prizes []Prize `json:"prizes"`
}

// DefaultWheelConfig returns the prize table seeded on first boot.
func DefaultWheelConfig() WheelConfig {
	return WheelConfig{Prizes: []Prize{
		{Name: "谢谢参与", Weight: 1},
		{Name: "纪念贴纸", Weight: 2},
		{Name: "B站小礼物", Weight: 1},
		{Name: "红包5元", Weight: 0.5},
		{Name: "红包10元", Weight: 0.3},
		{Name: "周边一份", Weight: 0.2},
		{Name: "定制礼品", Weight: 0.1},
		{Name: "大奖！", Weight: 0.05},
	}}
}

// NormalizePrizes trims and caps names, floors negative weights to zero and
// drops entries that end up with zero weight. The returned slice may be empty;
// callers decide whether that is an error.
func NormalizePrizes(prizes []Prize) []Prize {
	out := make([]Prize, 0, len(prizes))
	for _, p := range prizes {
		name := strings.TrimSpace(p.Name)
		if r := []rune(name); len(r) > MaxPrizeNameLen {
			name = string(r[:MaxPrizeNameLen])
		}
		if name == "" {
			name = UnnamedPrize
		}
		weight := p.Weight
		if weight < 0 || weight != weight { // NaN guard
			weight = 0
		}
		if weight == 0 {
			continue
		}
		out = append(out, Prize{Name: name, Weight: weight})
	}
	return out
}
