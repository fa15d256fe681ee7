package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/lobby"
)

type Sessions interface {
	Snapshot(id string) (models.GameState, error)
	Submit(ctx context.Context, id, player string, a engine.Action) (models.GameState, error)
}

type Lobby interface {
	Join(ctx context.Context, gameID, userID string) (models.Player, error)
	Leave(ctx context.Context, gameID, userID string) error
	Start(ctx context.Context, gameID, userID string) (models.GameState, error)
}

type Handler struct {
	Sessions   Sessions
	Lobby      Lobby
	Secret     []byte
	AskTimeout time.Duration
	Log        logrus.FieldLogger
}

func NewServer() (*socketio.Server, error) {
	return socketio.NewServer(nil)
}

// Register wires the game events onto the default namespace.
func (h *Handler) Register(server *socketio.Server) {
	server.OnConnect(namespace, func(s socketio.Conn) error {
		s.SetContext("")
		h.Log.WithField("socket", s.ID()).Debug("socket connected")
		return nil
	})

	server.OnEvent(namespace, "join-game", func(s socketio.Conn, jsonStr string) {
		p, user, ok := h.parse(s, jsonStr)
		if !ok {
			return
		}
		ctx, cancel := h.context()
		defer cancel()

		if state, err := h.Sessions.Snapshot(p.GameId); err == nil {
			s.Join(p.GameId)
			h.emitState(s, state)
			return
		}
		player, err := h.Lobby.Join(ctx, p.GameId, user)
		if err != nil && !errors.Is(err, lobby.ErrAlreadyJoined) {
			h.fail(s, err)
			return
		}
		server.BroadcastToRoom(namespace, p.GameId, "player-join", player.Username)
		s.Join(p.GameId)
		s.Emit("joined-game", strconv.Itoa(server.RoomLen(namespace, p.GameId)))
		h.Log.WithField("socket", s.ID()).WithField("game", p.GameId).Info("joined room")
	})

	server.OnEvent(namespace, "leave-game", func(s socketio.Conn, jsonStr string) {
		p, user, ok := h.parse(s, jsonStr)
		if !ok {
			return
		}
		ctx, cancel := h.context()
		defer cancel()

		s.Leave(p.GameId)
		if err := h.Lobby.Leave(ctx, p.GameId, user); err != nil && !errors.Is(err, lobby.ErrGameNotOpen) {
			h.fail(s, err)
			return
		}
		server.BroadcastToRoom(namespace, p.GameId, "player-left", user)
	})

	server.OnEvent(namespace, "start-game", func(s socketio.Conn, jsonStr string) {
		p, user, ok := h.parse(s, jsonStr)
		if !ok {
			return
		}
		ctx, cancel := h.context()
		defer cancel()

		if _, err := h.Lobby.Start(ctx, p.GameId, user); err != nil {
			h.fail(s, err)
		}
	})

	server.OnEvent(namespace, "view-state", func(s socketio.Conn, jsonStr string) {
		p, err := ParsePayload(jsonStr)
		if err != nil {
			h.fail(s, err)
			return
		}
		state, err := h.Sessions.Snapshot(p.GameId)
		if err != nil {
			h.fail(s, err)
			return
		}
		h.emitState(s, state)
	})

	for event := range actionEvents {
		event := event
		server.OnEvent(namespace, event, func(s socketio.Conn, jsonStr string) {
			h.submit(s, event, jsonStr)
		})
	}

	server.OnError(namespace, func(s socketio.Conn, e error) {
		h.Log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		s.LeaveAll()
		h.Log.WithField("socket", s.ID()).WithField("reason", reason).Debug("socket disconnected")
	})
}

// submit runs one game action. The new state reaches the room through the
// registry publisher, so only failures are answered here.
func (h *Handler) submit(s socketio.Conn, event, jsonStr string) {
	p, user, ok := h.parse(s, jsonStr)
	if !ok {
		return
	}
	action, _ := ActionFor(event, p)
	ctx, cancel := h.context()
	defer cancel()

	if _, err := h.Sessions.Submit(ctx, p.GameId, user, action); err != nil {
		h.fail(s, err)
	}
}

func (h *Handler) parse(s socketio.Conn, jsonStr string) (Payload, string, bool) {
	p, err := ParsePayload(jsonStr)
	if err != nil {
		h.fail(s, err)
		return Payload{}, "", false
	}
	user, err := UserFromToken(p.Token, h.Secret)
	if err != nil {
		h.fail(s, err)
		return Payload{}, "", false
	}
	return p, user, true
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	timeout := h.AskTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (h *Handler) emitState(s socketio.Conn, state models.GameState) {
	data, err := json.Marshal(state)
	if err != nil {
		h.fail(s, err)
		return
	}
	s.Emit("state", string(data))
}

func (h *Handler) fail(s socketio.Conn, err error) {
	h.Log.WithField("socket", s.ID()).WithError(err).Debug("event rejected")
	s.Emit("error-message", err.Error())
}

// NewHTTPServer serves the socket.io endpoint behind CORS. The caller starts
// server.Serve and the returned http.Server.
func NewHTTPServer(server *socketio.Server, addr string, origins []string) *http.Server {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	return &http.Server{Addr: addr, Handler: c.Handler(mux)}
}
