package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
)

const ActiveKey = "games:active"

func StateKey(id string) string {
	return fmt.Sprintf("game:%s:state", id)
}

// Store keeps the latest snapshot of each running game as JSON, plus a list
// of running game ids used to restore sessions at boot.
type Store struct {
	conns ConnSource
	log   logrus.FieldLogger
}

func NewStore(conns ConnSource, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{conns: conns, log: log.WithField("component", "snapshot-store")}
}

func (s *Store) Save(ctx context.Context, state models.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", state.Id, err)
	}
	conn := s.conns.Get()
	defer conn.Close()

	conn.Send("MULTI")
	conn.Send("SET", StateKey(state.Id), data)
	conn.Send("LREM", ActiveKey, 0, state.Id)
	conn.Send("RPUSH", ActiveKey, state.Id)
	if _, err := conn.Do("EXEC"); err != nil {
		return fmt.Errorf("save snapshot %s: %w", state.Id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn := s.conns.Get()
	defer conn.Close()

	conn.Send("MULTI")
	conn.Send("DEL", StateKey(id))
	conn.Send("LREM", ActiveKey, 0, id)
	if _, err := conn.Do("EXEC"); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}

// LoadActive returns every indexed snapshot. Ids whose snapshot is gone are
// dropped from the index; undecodable snapshots are logged and skipped.
func (s *Store) LoadActive(ctx context.Context) ([]models.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn := s.conns.Get()
	defer conn.Close()

	ids, err := LGET(ActiveKey, conn)
	if err != nil {
		return nil, fmt.Errorf("list active games: %w", err)
	}
	states := make([]models.GameState, 0, len(ids))
	for _, id := range ids {
		state, err := decode(id, conn)
		switch {
		case errors.Is(err, redis.ErrNil):
			s.log.WithField("session", id).Warn("dropping stale index entry")
			if err := LREM(ActiveKey, id, conn); err != nil {
				return nil, err
			}
		case err != nil:
			s.log.WithField("session", id).WithError(err).Error("skipping snapshot")
		default:
			states = append(states, state)
		}
	}
	return states, nil
}

func decode(id string, conn redis.Conn) (models.GameState, error) {
	data, err := Get(StateKey(id), conn)
	if err != nil {
		return models.GameState{}, err
	}
	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.GameState{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return state, nil
}
