package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bwwq/fate-roulette/ai"
	"github.com/bwwq/fate-roulette/game"
	"github.com/bwwq/fate-roulette/lobby"
	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/storage"
	"github.com/bwwq/fate-roulette/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	maxNameLength = 24
	defaultName   = "Player"
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	// Only touched by ReadPump.
	profile string
	name    string
	authed  bool

	mu      sync.Mutex
	decider *RemoteDecider
	cancel  context.CancelFunc
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		profile: storage.LocalProfile,
	}
}

// ReadPump pumps messages from the websocket connection to the hub.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "start":
		c.handleStart(envelope.Raw)
	case "action", "target", "choose":
		c.handleReply(envelope.Raw)
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid auth message.")
		return
	}
	if c.Hub.Auth != nil {
		profile, name, err := c.Hub.Auth(msg.Token)
		if err != nil {
			slog.Info("auth rejected", "tag", "ws", "err", err)
			c.sendError("Authentication failed.")
			return
		}
		c.profile, c.name = profile, name
	}
	c.authed = true
	c.sendJSON(WelcomeMsg{
		Type:     "welcome",
		Profile:  c.profile,
		Name:     c.name,
		Unlocked: c.Hub.Lobby.Progress(context.Background(), c.profile),
	})
}

func (c *Client) handleStart(raw json.RawMessage) {
	if c.Hub.Auth != nil && !c.authed {
		c.sendError("Authenticate first.")
		return
	}
	var msg StartMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid start message.")
		return
	}
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = c.name
	}
	if name == "" {
		name = defaultName
	}
	if len(name) > maxNameLength {
		c.sendError("Name is too long.")
		return
	}
	tier := ai.Tier(msg.Difficulty)
	if tier < ai.TierReactive || tier > ai.TierTracking {
		c.sendError("Unknown difficulty.")
		return
	}

	c.mu.Lock()
	if c.decider != nil {
		c.mu.Unlock()
		c.sendError("A match is already in progress.")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := NewRemoteDecider(c.sendJSON)
	c.decider, c.cancel = d, cancel
	c.mu.Unlock()

	names := [2]string{name, lobby.OpponentProfile(c.Hub.Config, tier).Name}
	req := lobby.Request{
		Profile: c.profile,
		Name:    name,
		Tier:    tier,
		Human:   d,
		Sinks:   []game.EventSink{NewEventStream(lobby.HumanSeat, names, c.sendJSON)},
	}
	go c.play(ctx, req)
}

// play runs one match and reports its outcome to the client.
func (c *Client) play(ctx context.Context, req lobby.Request) {
	res, err := c.Hub.Lobby.Play(ctx, req)
	c.abort()
	if err != nil {
		switch {
		case ctx.Err() != nil:
		case errors.Is(err, matcherrors.ErrLevelLocked):
			c.sendError("That difficulty is locked.")
		default:
			slog.Error("match failed", "tag", "ws", "profile", req.Profile, "err", err)
			c.sendError("Could not run the match.")
		}
		return
	}
	winner := "opponent"
	if res.HumanWon {
		winner = "you"
	}
	c.sendJSON(MatchOverMsg{Type: "match_over", Winner: winner, YouWon: res.HumanWon, Unlocked: res.Unlocked})
}

// abort cancels the running match, if any, and forgets its decider.
func (c *Client) abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.decider, c.cancel = nil, nil
}

func (c *Client) handleReply(raw json.RawMessage) {
	c.mu.Lock()
	d := c.decider
	c.mu.Unlock()
	if d == nil {
		c.sendError("You are not in a match.")
		return
	}
	var r reply
	if err := json.Unmarshal(raw, &r); err != nil {
		c.sendError("Invalid reply message.")
		return
	}
	if !d.deliver(r) {
		c.sendError("Too many messages; wait for the next prompt.")
	}
}

func (c *Client) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal outbound message", "tag", "ws", "err", err)
		return
	}
	wsutil.SafeSend(c.Send, data)
}

func (c *Client) sendError(message string) {
	c.sendJSON(ErrorMsg{Type: "error", Message: message})
}
