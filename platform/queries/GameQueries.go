package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/DedS3t/monopoly-engine/app/models"
)

var ErrNotFound = errors.New("not found")

// Repo runs the game, player and user queries.
type Repo struct {
	db orm.DB
}

func New(db orm.DB) *Repo {
	return &Repo{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, pg.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func (r *Repo) CreateGame(ctx context.Context, game *models.Game) error {
	_, err := r.db.ModelContext(ctx, game).Insert()
	return err
}

func (r *Repo) GetGame(ctx context.Context, id string) (models.Game, error) {
	game := models.Game{Id: id}
	err := r.db.ModelContext(ctx, &game).WherePK().Select()
	return game, notFound(err, "game "+id)
}

func (r *Repo) AvailableGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := r.db.ModelContext(ctx, &games).
		Where("status = ?", models.GameStatusOpen).
		Order("created_at DESC").
		Select()
	return games, err
}

func (r *Repo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ModelContext(ctx, &models.Game{Id: id}).
		WherePK().
		Set("status = ?", status).
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGame removes a game and its seats.
func (r *Repo) DeleteGame(ctx context.Context, id string) error {
	if _, err := r.db.ModelContext(ctx, (*models.Player)(nil)).Where("game_id = ?", id).Delete(); err != nil {
		return err
	}
	_, err := r.db.ModelContext(ctx, &models.Game{Id: id}).WherePK().Delete()
	return err
}

// RecordResult marks a finished session in the games table.
func (r *Repo) RecordResult(ctx context.Context, state models.GameState) error {
	_, err := r.db.ModelContext(ctx, &models.Game{Id: state.Id}).
		WherePK().
		Set("status = ?", models.GameStatusFinished).
		Set("winner = ?", state.Winner).
		Set("finished_at = ?", time.Now()).
		Update()
	return err
}

func (r *Repo) AddPlayer(ctx context.Context, player models.Player) error {
	_, err := r.db.ModelContext(ctx, &player).Insert()
	return err
}

func (r *Repo) RemovePlayer(ctx context.Context, gameID, userID string) error {
	_, err := r.db.ModelContext(ctx, (*models.Player)(nil)).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete()
	return err
}

// ListPlayers returns the seats of a game in join order.
func (r *Repo) ListPlayers(ctx context.Context, gameID string) ([]models.Player, error) {
	var players []models.Player
	err := r.db.ModelContext(ctx, &players).
		Where("game_id = ?", gameID).
		Order("seat ASC").
		Select()
	return players, err
}
