package service

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"spinwheel/internal/draw"
	"spinwheel/internal/history"
	"spinwheel/internal/hub"
	"spinwheel/internal/models"
	"spinwheel/internal/store"
)

const (
	// MaxSpinCount caps draws per request to prevent abuse.
	MaxSpinCount = 20

	// MaxParticipantLen caps the participant label in runes.
	MaxParticipantLen = 100

	// AnonymousParticipant replaces an empty or undecodable participant.
	AnonymousParticipant = "匿名"
)

var percentEncoded = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)

// SpinService runs the authoritative spin flow: read config, draw, append to
// history, broadcast, respond. One instance serves all requests.
type SpinService struct {
	Store  *store.Store
	Log    *history.Log
	Hub    *hub.Hub
	Picker *draw.Picker
	Logger *zap.Logger

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

// SpinResult is what the caller gets back synchronously.
type SpinResult struct {
	Participant string
	Results     []string
}

// Spin performs count authoritative draws for participant and returns every
// outcome. All entries of one request share a timestamp. History is persisted
// before anything is broadcast, so displays never see a result the store
// could still lose.
func (s *SpinService) Spin(participant string, count int) (SpinResult, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxSpinCount {
		count = MaxSpinCount
	}

	cfg := s.Store.ReadConfig()
	results := s.Picker.PickN(cfg.Prizes, count)

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	entries := make([]models.HistoryEntry, 0, len(results))
	for _, name := range results {
		entries = append(entries, models.HistoryEntry{
			Participant: participant,
			Prize:       name,
			Time:        now.UnixMilli(),
		})
	}
	if _, err := s.Log.AppendBatch(entries); err != nil {
		return SpinResult{}, err
	}

	for _, entry := range entries {
		s.Hub.Publish(models.Event{Type: models.EventHistoryAppend, Payload: entry})
	}
	s.Hub.Publish(models.Event{
		Type:    models.EventSpin,
		Payload: models.SpinPayload{Participant: participant, Results: results},
	})

	if s.Logger != nil {
		s.Logger.Info("spin completed",
			zap.String("participant", participant),
			zap.Int("count", count),
			zap.Strings("results", results),
		)
	}
	return SpinResult{Participant: participant, Results: results}, nil
}

// DecodeParticipant resolves the participant label from its possible request
// encodings. Base64 fields win over the plain field; a plain field that looks
// percent-encoded is URI-decoded. The result is NFC-normalized and capped;
// anything empty or undecodable becomes the anonymous label.
func DecodeParticipant(plain, b64 string) string {
	raw := plain
	if b64 != "" {
		raw = decodeBase64(b64)
	}
	if percentEncoded.MatchString(raw) {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	out := norm.NFC.String(raw)
	if r := []rune(out); len(r) > MaxParticipantLen {
		out = string(r[:MaxParticipantLen])
	}
	if out == "" {
		return AnonymousParticipant
	}
	return out
}

func decodeBase64(s string) string {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return string(data)
	}
	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return string(data)
	}
	return ""
}
