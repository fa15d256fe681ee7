// Package lobby seats users at game tables and starts their sessions.
package lobby

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/queries"
)

const gameIdLength = 8

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrUnknownUser   = errors.New("unknown user")
	ErrGameNotOpen   = errors.New("game already started")
	ErrAlreadyJoined = errors.New("already seated at this game")
	ErrNotSeated     = errors.New("not seated at this game")
)

type Repository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (models.Game, error)
	AvailableGames(ctx context.Context) ([]models.Game, error)
	SetStatus(ctx context.Context, id, status string) error
	DeleteGame(ctx context.Context, id string) error
	AddPlayer(ctx context.Context, player models.Player) error
	RemovePlayer(ctx context.Context, gameID, userID string) error
	ListPlayers(ctx context.Context, gameID string) ([]models.Player, error)
	GetUser(ctx context.Context, id string) (models.User, error)
}

// Sessions starts running games.
type Sessions interface {
	Create(ctx context.Context, id string, seats []engine.Seat, opts ...engine.Option) (models.GameState, error)
}

type Lobby struct {
	repo     Repository
	sessions Sessions
	log      logrus.FieldLogger
}

func New(repo Repository, sessions Sessions, log logrus.FieldLogger) *Lobby {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Lobby{repo: repo, sessions: sessions, log: log.WithField("component", "lobby")}
}

// CreateGame opens a table owned by ownerID. Invited players are seated after
// the owner, and the session starts at once when anyone was invited.
func (l *Lobby) CreateGame(ctx context.Context, ownerID string, dto models.GameCreateDto) (models.Game, error) {
	owner, err := l.user(ctx, ownerID)
	if err != nil {
		return models.Game{}, err
	}
	invited := make([]models.User, 0, len(dto.Players))
	for _, id := range dto.Players {
		if id == ownerID {
			continue
		}
		u, err := l.user(ctx, id)
		if err != nil {
			return models.Game{}, err
		}
		invited = append(invited, u)
	}

	game := models.Game{
		Id:     pkg.RandString(gameIdLength),
		Name:   dto.Name,
		Owner:  ownerID,
		Status: models.GameStatusOpen,
	}
	if err := l.repo.CreateGame(ctx, &game); err != nil {
		return models.Game{}, fmt.Errorf("create game: %w", err)
	}
	for seat, u := range append([]models.User{owner}, invited...) {
		p := models.Player{User_id: u.Id, Game_id: game.Id, Username: u.Email, Seat: seat}
		if err := l.repo.AddPlayer(ctx, p); err != nil {
			return models.Game{}, fmt.Errorf("seat %s: %w", u.Id, err)
		}
	}
	l.log.WithField("game", game.Id).WithField("players", len(invited)+1).Info("game created")

	if len(invited) == 0 {
		return game, nil
	}
	if _, err := l.Start(ctx, game.Id, ownerID); err != nil {
		return models.Game{}, err
	}
	game.Status = models.GameStatusInProgress
	return game, nil
}

func (l *Lobby) Game(ctx context.Context, id string) (models.Game, error) {
	game, err := l.repo.GetGame(ctx, id)
	if errors.Is(err, queries.ErrNotFound) {
		return models.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return game, err
}

func (l *Lobby) Available(ctx context.Context) ([]models.Game, error) {
	return l.repo.AvailableGames(ctx)
}

// Players lists the seats of a game in turn order.
func (l *Lobby) Players(ctx context.Context, gameID string) ([]models.Player, error) {
	if _, err := l.Game(ctx, gameID); err != nil {
		return nil, err
	}
	return l.repo.ListPlayers(ctx, gameID)
}

func (l *Lobby) Join(ctx context.Context, gameID, userID string) (models.Player, error) {
	game, err := l.Game(ctx, gameID)
	if err != nil {
		return models.Player{}, err
	}
	if game.Status != models.GameStatusOpen {
		return models.Player{}, ErrGameNotOpen
	}
	u, err := l.user(ctx, userID)
	if err != nil {
		return models.Player{}, err
	}
	players, err := l.repo.ListPlayers(ctx, gameID)
	if err != nil {
		return models.Player{}, err
	}
	if seated(players, userID) {
		return models.Player{}, ErrAlreadyJoined
	}
	p := models.Player{User_id: u.Id, Game_id: gameID, Username: u.Email, Seat: nextSeat(players)}
	if err := l.repo.AddPlayer(ctx, p); err != nil {
		return models.Player{}, fmt.Errorf("join %s: %w", gameID, err)
	}
	l.log.WithField("game", gameID).WithField("player", userID).Info("player joined")
	return p, nil
}

// Leave frees a seat at a table that has not started. The table is dropped
// once nobody is left.
func (l *Lobby) Leave(ctx context.Context, gameID, userID string) error {
	game, err := l.Game(ctx, gameID)
	if err != nil {
		return err
	}
	if game.Status != models.GameStatusOpen {
		return ErrGameNotOpen
	}
	players, err := l.repo.ListPlayers(ctx, gameID)
	if err != nil {
		return err
	}
	if !seated(players, userID) {
		return ErrNotSeated
	}
	if len(players) == 1 {
		l.log.WithField("game", gameID).Info("empty game removed")
		return l.repo.DeleteGame(ctx, gameID)
	}
	return l.repo.RemovePlayer(ctx, gameID, userID)
}

// Start launches the session for an open table. Only a seated user may start it.
func (l *Lobby) Start(ctx context.Context, gameID, userID string) (models.GameState, error) {
	game, err := l.Game(ctx, gameID)
	if err != nil {
		return models.GameState{}, err
	}
	if game.Status != models.GameStatusOpen {
		return models.GameState{}, ErrGameNotOpen
	}
	players, err := l.repo.ListPlayers(ctx, gameID)
	if err != nil {
		return models.GameState{}, err
	}
	if !seated(players, userID) {
		return models.GameState{}, ErrNotSeated
	}
	seats := make([]engine.Seat, len(players))
	for i, p := range players {
		seats[i] = engine.Seat{Id: p.User_id, Username: p.Username}
	}
	state, err := l.sessions.Create(ctx, gameID, seats)
	if err != nil {
		return models.GameState{}, err
	}
	if err := l.repo.SetStatus(ctx, gameID, models.GameStatusInProgress); err != nil {
		l.log.WithField("game", gameID).WithError(err).Error("marking game started failed")
	}
	return state, nil
}

func (l *Lobby) user(ctx context.Context, id string) (models.User, error) {
	u, err := l.repo.GetUser(ctx, id)
	if errors.Is(err, queries.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	return u, err
}

func seated(players []models.Player, userID string) bool {
	for _, p := range players {
		if p.User_id == userID {
			return true
		}
	}
	return false
}

func nextSeat(players []models.Player) int {
	next := 0
	for _, p := range players {
		if p.Seat >= next {
			next = p.Seat + 1
		}
	}
	return next
}
