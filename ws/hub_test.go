package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bwwq/fate-roulette/config"
	"github.com/bwwq/fate-roulette/game"
	"github.com/bwwq/fate-roulette/lobby"
	"github.com/bwwq/fate-roulette/spirit"
)

type inbound struct {
	Type     string       `json:"type"`
	Message  string       `json:"message"`
	Prompt   string       `json:"prompt"`
	Options  []string     `json:"options"`
	Event    EventPayload `json:"event"`
	Winner   string       `json:"winner"`
	YouWon   bool         `json:"youWon"`
	Profile  string       `json:"profile"`
	Name     string       `json:"name"`
	Unlocked int          `json:"unlocked"`
}

func newTestServer(t *testing.T, auth Authenticator) *httptest.Server {
	t.Helper()
	cfg := config.Defaults()
	for i := range cfg.AIProfiles {
		cfg.AIProfiles[i].DelayMS = 0
	}
	reg := spirit.NewRegistry()
	spirit.RegisterAll(reg)
	l := lobby.New(cfg, reg, nil)
	l.NewRNG = func() game.RNG { return rand.New(rand.NewSource(5)) }

	hub := NewHub(cfg, l, auth)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg inbound
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestHub_PlaysFullMatch(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv)

	send(t, conn, StartMsg{Type: "start", Name: "Alice", Difficulty: 1})

	sawStart := false
	var first inbound
	for first.Type != "prompt" {
		first = read(t, conn)
		if first.Type == "event" && first.Event.Kind == "match_started" {
			sawStart = true
		}
	}
	if first.Prompt != PromptAction {
		t.Fatalf("expected an action prompt, got %q", first.Prompt)
	}
	send(t, conn, ActionMsg{Type: "action", Action: "dance"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected an error for an invalid action, got %+v", msg)
	}
	if msg := read(t, conn); msg.Type != "prompt" || msg.Prompt != PromptAction {
		t.Fatalf("expected the action prompt again, got %+v", msg)
	}
	send(t, conn, ActionMsg{Type: "action", Action: "draw_fate"})

	for {
		msg := read(t, conn)
		switch msg.Type {
		case "event":
			if msg.Event.Kind == "match_started" {
				sawStart = true
			}
		case "prompt":
			switch msg.Prompt {
			case PromptAction:
				send(t, conn, ActionMsg{Type: "action", Action: "draw_fate"})
			case PromptTarget:
				send(t, conn, TargetMsg{Type: "target", Target: "opponent"})
			case PromptForce:
				send(t, conn, ChooseMsg{Type: "choose", Index: -1})
			default:
				send(t, conn, ChooseMsg{Type: "choose", Index: 0})
			}
		case "match_over":
			if msg.YouWon != (msg.Winner == "you") {
				t.Errorf("inconsistent result %+v", msg)
			}
			if msg.Unlocked < 1 {
				t.Errorf("expected an unlocked level, got %d", msg.Unlocked)
			}
			if !sawStart {
				t.Error("expected the match_started event to be streamed")
			}
			return
		case "error":
			t.Fatalf("unexpected error %q", msg.Message)
		}
	}
}

func TestHub_LockedDifficulty(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv)

	send(t, conn, StartMsg{Type: "start", Name: "Alice", Difficulty: 2})
	if msg := read(t, conn); msg.Type != "error" || !strings.Contains(msg.Message, "locked") {
		t.Errorf("expected a locked error, got %+v", msg)
	}
	send(t, conn, StartMsg{Type: "start", Name: "Alice", Difficulty: 9})
	if msg := read(t, conn); msg.Type != "error" || msg.Message != "Unknown difficulty." {
		t.Errorf("expected an unknown difficulty error, got %+v", msg)
	}
}

func TestHub_ReplyOutsideMatch(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv)

	send(t, conn, ChooseMsg{Type: "choose", Index: 0})
	if msg := read(t, conn); msg.Type != "error" || msg.Message != "You are not in a match." {
		t.Errorf("unexpected reply %+v", msg)
	}
	send(t, conn, map[string]string{"type": "flip_card"})
	if msg := read(t, conn); msg.Type != "error" || !strings.Contains(msg.Message, "Unknown message type") {
		t.Errorf("unexpected reply %+v", msg)
	}
}

func TestHub_AuthRequired(t *testing.T) {
	auth := func(token string) (string, string, error) {
		if token != "good" {
			return "", "", errors.New("bad token")
		}
		return "user-1", "Uma", nil
	}
	srv := newTestServer(t, auth)
	conn := dial(t, srv)

	send(t, conn, StartMsg{Type: "start", Difficulty: 1})
	if msg := read(t, conn); msg.Message != "Authenticate first." {
		t.Errorf("expected auth to be required, got %+v", msg)
	}
	send(t, conn, AuthMsg{Type: "auth", Token: "bad"})
	if msg := read(t, conn); msg.Message != "Authentication failed." {
		t.Errorf("expected auth failure, got %+v", msg)
	}
	send(t, conn, AuthMsg{Type: "auth", Token: "good"})
	msg := read(t, conn)
	if msg.Type != "welcome" || msg.Profile != "user-1" || msg.Name != "Uma" || msg.Unlocked != 1 {
		t.Errorf("unexpected welcome %+v", msg)
	}
}

func TestInboundEnvelope(t *testing.T) {
	var env InboundEnvelope
	if err := json.Unmarshal([]byte(`{"type":"choose","index":2}`), &env); err != nil {
		t.Fatal(err)
	}
	var r reply
	if err := json.Unmarshal(env.Raw, &r); err != nil {
		t.Fatal(err)
	}
	if env.Type != "choose" || r.Index != 2 {
		t.Errorf("unexpected envelope %+v / %+v", env, r)
	}
}
