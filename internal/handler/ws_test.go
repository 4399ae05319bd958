package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"

	"spinwheel/internal/models"
)

func readEvent(ctx context.Context, t *testing.T, conn *websocket.Conn) models.Event {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("websocket read: %v", err)
	}
	var evt models.Event
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return evt
}

func TestWebSocketSnapshotThenPush(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	want := []models.EventType{models.EventConfig, models.EventHistory, models.EventSettings}
	for _, typ := range want {
		if evt := readEvent(ctx, t, conn); evt.Type != typ {
			t.Fatalf("snapshot message %q, want %q", evt.Type, typ)
		}
	}

	if w := env.do(t, http.MethodPost, "/history", gin.H{"participant": "p", "prize": "x"}); w.Code != http.StatusOK {
		t.Fatalf("append status %d", w.Code)
	}
	evt := readEvent(ctx, t, conn)
	if evt.Type != models.EventHistoryAppend {
		t.Fatalf("expected history_append push, got %q", evt.Type)
	}
	payload, _ := json.Marshal(evt.Payload)
	var entry models.HistoryEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	if entry.Participant != "p" || entry.Prize != "x" {
		t.Fatalf("unexpected pushed entry: %+v", entry)
	}
}

func TestWebSocketSpinBroadcast(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	for i := 0; i < 3; i++ {
		readEvent(ctx, t, conn) // drain snapshot
	}

	if w := env.do(t, http.MethodPost, "/spin", gin.H{"participant": "p", "count": 2}); w.Code != http.StatusOK {
		t.Fatalf("spin status %d", w.Code)
	}

	var appended []string
	for i := 0; i < 2; i++ {
		evt := readEvent(ctx, t, conn)
		if evt.Type != models.EventHistoryAppend {
			t.Fatalf("push %d = %q, want history_append", i, evt.Type)
		}
		payload, _ := json.Marshal(evt.Payload)
		var entry models.HistoryEntry
		if err := json.Unmarshal(payload, &entry); err != nil {
			t.Fatalf("unmarshal entry: %v", err)
		}
		appended = append(appended, entry.Prize)
	}

	evt := readEvent(ctx, t, conn)
	if evt.Type != models.EventSpin {
		t.Fatalf("expected spin push, got %q", evt.Type)
	}
	payload, _ := json.Marshal(evt.Payload)
	var spin models.SpinPayload
	if err := json.Unmarshal(payload, &spin); err != nil {
		t.Fatalf("unmarshal spin payload: %v", err)
	}
	if len(spin.Results) != 2 {
		t.Fatalf("spin payload has %d results, want 2", len(spin.Results))
	}
	for i := range spin.Results {
		if spin.Results[i] != appended[i] {
			t.Fatalf("spin result %d = %q, history_append says %q", i, spin.Results[i], appended[i])
		}
	}
}

func TestWebSocketRejectsOtherPaths(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/not-ws"
	if _, _, err := websocket.Dial(ctx, wsURL, nil); err == nil {
		t.Fatalf("expected dial to non-ws path to fail")
	}
}
