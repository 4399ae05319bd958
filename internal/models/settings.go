package models

// Settings holds the spin timing knobs shown to displays. All three fields
// are clamped independently on every write; invalid input falls back to the
// default instead of being rejected.
type Settings struct {
	Rounds   int `json:"rounds"`
	Duration int `json:"duration"`
	ModalMs  int `json:"modalMs"`
}

const (
	MinRounds   = 1
	MaxRounds   = 12
	MinDuration = 1500
	MaxDuration = 12000
	MinModalMs  = 500
	MaxModalMs  = 10000
)

func DefaultSettings() Settings {
	return Settings{Rounds: 4, Duration: 4500, ModalMs: 2500}
}

// SettingsFrom coerces loosely-typed JSON values into clamped settings.
// Non-numeric or missing fields take the default before clamping.
func SettingsFrom(rounds, duration, modalMs any) Settings {
	def := DefaultSettings()
	return Settings{
		Rounds:   clampInt(IntFrom(rounds, def.Rounds), MinRounds, MaxRounds),
		Duration: clampInt(IntFrom(duration, def.Duration), MinDuration, MaxDuration),
		ModalMs:  clampInt(IntFrom(modalMs, def.ModalMs), MinModalMs, MaxModalMs),
	}
}

// Clamp returns a copy with every field forced into its valid range.
func (s Settings) Clamp() Settings {
	return Settings{
		Rounds:   clampInt(s.Rounds, MinRounds, MaxRounds),
		Duration: clampInt(s.Duration, MinDuration, MaxDuration),
		ModalMs:  clampInt(s.ModalMs, MinModalMs, MaxModalMs),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
