// Package registry runs every live game session on its own actor. The actor
// is the single writer of its session; readers get the last published
// snapshot without waiting on it.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

const defaultAskTimeout = 3 * time.Second

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrUnavailable     = errors.New("session did not answer in time")

	ErrDeadlineNotReached = fmt.Errorf("%w: turn deadline not reached", engine.ErrInvalidAction)
)

// SnapshotStore keeps the latest state of every running session so games
// survive a restart.
type SnapshotStore interface {
	Save(ctx context.Context, state models.GameState) error
	Delete(ctx context.Context, id string) error
	LoadActive(ctx context.Context) ([]models.GameState, error)
}

// ResultRecorder is told once when a session ends.
type ResultRecorder interface {
	RecordResult(ctx context.Context, state models.GameState) error
}

// Publisher receives every state change, in order, for one session at a time.
type Publisher interface {
	Publish(state models.GameState)
}

type Config struct {
	// TurnTimeout of zero disables the turn deadline.
	TurnTimeout  time.Duration
	AskTimeout   time.Duration
	StartingCash int
	Logger       logrus.FieldLogger
}

type Registry struct {
	system *actor.ActorSystem
	root   *actor.RootContext

	store   SnapshotStore
	results ResultRecorder
	pub     Publisher

	turnTimeout  time.Duration
	askTimeout   time.Duration
	startingCash int
	log          logrus.FieldLogger
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	pid   *actor.PID
	state atomic.Pointer[models.GameState]
}

func (e *entry) load() *models.GameState {
	return e.state.Load()
}

func (e *entry) store(state models.GameState) {
	e.state.Store(&state)
}

// New starts the actor system. Nil collaborators are replaced by no-ops.
func New(cfg Config, store SnapshotStore, results ResultRecorder, pub Publisher) *Registry {
	if cfg.AskTimeout <= 0 {
		cfg.AskTimeout = defaultAskTimeout
	}
	if cfg.StartingCash <= 0 {
		cfg.StartingCash = engine.StartingCash
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if store == nil {
		store = nopStore{}
	}
	if results == nil {
		results = nopRecorder{}
	}
	if pub == nil {
		pub = nopPublisher{}
	}
	system := actor.NewActorSystem()
	return &Registry{
		system:       system,
		root:         system.Root,
		store:        store,
		results:      results,
		pub:          pub,
		turnTimeout:  cfg.TurnTimeout,
		askTimeout:   cfg.AskTimeout,
		startingCash: cfg.StartingCash,
		log:          cfg.Logger.WithField("component", "registry"),
		now:          time.Now,
		sessions:     make(map[string]*entry),
	}
}

// Create seats players in a new session and starts its actor.
func (r *Registry) Create(ctx context.Context, id string, seats []engine.Seat, opts ...engine.Option) (models.GameState, error) {
	base := []engine.Option{
		engine.WithStartingCash(r.startingCash),
		engine.WithLogger(r.log),
	}
	s, err := engine.New(id, seats, append(base, opts...)...)
	if err != nil {
		return models.GameState{}, err
	}
	state := s.Snapshot()
	if err := r.store.Save(ctx, state); err != nil {
		return models.GameState{}, fmt.Errorf("create session %s: %w", id, err)
	}
	if err := r.spawn(s, state); err != nil {
		return models.GameState{}, err
	}
	r.pub.Publish(state)
	return state, nil
}

// Restore respawns every session the store still lists as active. Broken
// snapshots are logged and skipped.
func (r *Registry) Restore(ctx context.Context, opts ...engine.Option) (int, error) {
	states, err := r.store.LoadActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore sessions: %w", err)
	}
	base := []engine.Option{engine.WithLogger(r.log)}
	n := 0
	for _, state := range states {
		log := r.log.WithField("session", state.Id)
		if !state.Active {
			continue
		}
		s, err := engine.Restore(state, append(base, opts...)...)
		if err != nil {
			log.WithError(err).Error("skipping unreadable snapshot")
			continue
		}
		if err := r.spawn(s, s.Snapshot()); err != nil {
			log.WithError(err).Warn("skipping snapshot")
			continue
		}
		n++
	}
	r.log.WithField("sessions", n).Info("sessions restored")
	return n, nil
}

func (r *Registry) spawn(s *engine.Session, state models.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.Id()]; ok {
		return fmt.Errorf("%w: %s", ErrSessionExists, s.Id())
	}
	e := &entry{}
	e.store(state)
	a := &sessionActor{
		reg:     r,
		entry:   e,
		session: s,
		log:     r.log.WithField("session", s.Id()),
	}
	e.pid = r.root.Spawn(actor.PropsFromProducer(func() actor.Actor { return a }))
	r.sessions[s.Id()] = e
	return nil
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Snapshot returns the last published state without blocking on the session.
// The result must be treated as read-only.
func (r *Registry) Snapshot(id string) (models.GameState, error) {
	e, err := r.lookup(id)
	if err != nil {
		return models.GameState{}, err
	}
	return *e.load(), nil
}

// Submit forwards one player input and waits for the resulting state.
func (r *Registry) Submit(ctx context.Context, id, player string, a engine.Action) (models.GameState, error) {
	return r.ask(ctx, id, &submitRequest{player: player, action: a})
}

// Timeout applies the default choice for the current turn once its deadline
// has passed. Earlier requests fail with ErrDeadlineNotReached, and so does
// every request when no turn timeout is configured.
func (r *Registry) Timeout(ctx context.Context, id string) (models.GameState, error) {
	return r.ask(ctx, id, &timeoutRequest{})
}

// Active lists running session ids.
func (r *Registry) Active() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Shutdown stops every session actor. Snapshots stay in the store.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	for id, e := range r.sessions {
		r.root.Stop(e.pid)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	r.system.Shutdown()
}

func (r *Registry) ask(ctx context.Context, id string, msg interface{}) (models.GameState, error) {
	e, err := r.lookup(id)
	if err != nil {
		return models.GameState{}, err
	}
	res, err := r.root.RequestFuture(e.pid, msg, r.timeoutFromContext(ctx)).Result()
	switch {
	case errors.Is(err, actor.ErrDeadLetter):
		return models.GameState{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	case err != nil:
		return models.GameState{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, id, err)
	}
	rep, ok := res.(*reply)
	if !ok {
		return models.GameState{}, fmt.Errorf("session %s: unexpected reply %T", id, res)
	}
	return rep.state, rep.err
}

func (r *Registry) timeoutFromContext(ctx context.Context) time.Duration {
	if ctx == nil {
		return r.askTimeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.askTimeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.askTimeout {
		return remain
	}
	return r.askTimeout
}

type nopStore struct{}

func (nopStore) Save(context.Context, models.GameState) error           { return nil }
func (nopStore) Delete(context.Context, string) error                   { return nil }
func (nopStore) LoadActive(context.Context) ([]models.GameState, error) { return nil, nil }

type nopRecorder struct{}

func (nopRecorder) RecordResult(context.Context, models.GameState) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(models.GameState) {}
