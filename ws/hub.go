package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/bwwq/fate-roulette/config"
	"github.com/bwwq/fate-roulette/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LobbyInterface defines what the Hub needs from the lobby.
type LobbyInterface interface {
	Play(ctx context.Context, req lobby.Request) (lobby.Result, error)
	Progress(ctx context.Context, profile string) int
}

// Authenticator maps a bearer token to a profile id and display name.
// A nil Authenticator means auth is not configured and every client
// plays as the local profile.
type Authenticator func(token string) (profile, name string, err error)

// Hub maintains the set of active clients and routes messages.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Lobby      LobbyInterface
	Config     *config.Config
	Auth       Authenticator
}

// NewHub creates a new Hub.
func NewHub(cfg *config.Config, l LobbyInterface, auth Authenticator) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Lobby:      l,
		Config:     cfg,
		Auth:       auth,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "ws")
			for client := range h.Clients {
				client.abort()
			}
			return
		case client := <-h.Register:
			h.Clients[client] = true
			slog.Info("client connected", "tag", "ws", "clients", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				// A match in progress is abandoned; nothing is recorded.
				client.abort()
				close(client.Send)
				slog.Info("client disconnected", "tag", "ws", "clients", len(h.Clients))
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "tag", "ws", "err", err)
		return
	}

	client := newClient(h, conn)
	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
