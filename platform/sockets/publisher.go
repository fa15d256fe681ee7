package socket

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
)

const namespace = "/"

type broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// Publisher pushes every new game state to the game's room.
type Publisher struct {
	server broadcaster
	log    logrus.FieldLogger
}

func NewPublisher(server broadcaster, log logrus.FieldLogger) *Publisher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Publisher{server: server, log: log}
}

func (p *Publisher) Publish(state models.GameState) {
	data, err := json.Marshal(state)
	if err != nil {
		p.log.WithField("session", state.Id).WithError(err).Error("encoding state failed")
		return
	}
	p.server.BroadcastToRoom(namespace, state.Id, "state", string(data))
	if !state.Active {
		p.server.BroadcastToRoom(namespace, state.Id, "game-over", state.Winner)
	}
}
