package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/lobby"
	"github.com/DedS3t/monopoly-engine/platform/registry"
)

type Lobby interface {
	CreateGame(ctx context.Context, ownerID string, dto models.GameCreateDto) (models.Game, error)
	Game(ctx context.Context, id string) (models.Game, error)
	Available(ctx context.Context) ([]models.Game, error)
	Players(ctx context.Context, gameID string) ([]models.Player, error)
	Join(ctx context.Context, gameID, userID string) (models.Player, error)
	Leave(ctx context.Context, gameID, userID string) error
	Start(ctx context.Context, gameID, userID string) (models.GameState, error)
}

type Sessions interface {
	Snapshot(id string) (models.GameState, error)
	Submit(ctx context.Context, id, player string, a engine.Action) (models.GameState, error)
	Timeout(ctx context.Context, id string) (models.GameState, error)
}

type GameController struct {
	Lobby    Lobby
	Sessions Sessions
	Log      logrus.FieldLogger
}

func (g *GameController) CreateGame(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game, err := g.Lobby.CreateGame(c.Context(), userID, *gameCreateDto)
	if err != nil {
		return g.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

func (g *GameController) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := g.Lobby.Available(c.Context())
	if err != nil {
		return g.fail(c, err)
	}
	if games == nil {
		games = []models.Game{}
	}
	return c.JSON(games)
}

func (g *GameController) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	game, err := g.Lobby.Game(c.Context(), verifyGameDto.Code)
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true, "open": game.Status == models.GameStatusOpen})
}

// GetGame returns the live snapshot of a running game, or the stored record
// once the game is no longer running.
func (g *GameController) GetGame(c *fiber.Ctx) error {
	id := c.Params("id")
	state, err := g.Sessions.Snapshot(id)
	if err == nil {
		return c.JSON(state)
	}
	if !errors.Is(err, registry.ErrSessionNotFound) {
		return g.fail(c, err)
	}
	game, err := g.Lobby.Game(c.Context(), id)
	if err != nil {
		return g.fail(c, err)
	}
	return c.JSON(game)
}

func (g *GameController) GetPlayers(c *fiber.Ctx) error {
	players, err := g.Lobby.Players(c.Context(), c.Params("id"))
	if err != nil {
		return g.fail(c, err)
	}
	if players == nil {
		players = []models.Player{}
	}
	return c.JSON(players)
}

func (g *GameController) JoinGame(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	player, err := g.Lobby.Join(c.Context(), c.Params("id"), userID)
	if err != nil {
		return g.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

func (g *GameController) LeaveGame(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := g.Lobby.Leave(c.Context(), c.Params("id"), userID); err != nil {
		return g.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (g *GameController) StartGame(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	state, err := g.Lobby.Start(c.Context(), c.Params("id"), userID)
	if err != nil {
		return g.fail(c, err)
	}
	return c.JSON(state)
}

func (g *GameController) SubmitAction(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	actionDto := new(models.ActionDto)
	if err := c.BodyParser(actionDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	action, err := engine.ParseAction(*actionDto)
	if err != nil {
		return g.fail(c, err)
	}

	state, err := g.Sessions.Submit(c.Context(), c.Params("id"), userID, action)
	if err != nil {
		return g.fail(c, err)
	}
	return c.JSON(state)
}

// Timeout applies the default choice for a stalled turn. Any seated player
// may ask, but the session refuses until the turn deadline has passed.
func (g *GameController) Timeout(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id := c.Params("id")
	state, err := g.Sessions.Snapshot(id)
	if err != nil {
		return g.fail(c, err)
	}
	if !isSeated(state, userID) {
		return g.fail(c, lobby.ErrNotSeated)
	}

	state, err = g.Sessions.Timeout(c.Context(), id)
	if err != nil {
		return g.fail(c, err)
	}
	return c.JSON(state)
}

func isSeated(state models.GameState, userID string) bool {
	for _, p := range state.Players {
		if p.Id == userID {
			return true
		}
	}
	return false
}

func (g *GameController) fail(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	if code >= fiber.StatusInternalServerError {
		g.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps engine, lobby and registry errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case engine.IsFatal(err):
		return fiber.StatusInternalServerError
	case errors.Is(err, registry.ErrSessionNotFound), errors.Is(err, lobby.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, engine.ErrUnknownAction), errors.Is(err, lobby.ErrUnknownUser):
		return fiber.StatusBadRequest
	case errors.Is(err, engine.ErrUnknownPlayer), errors.Is(err, engine.ErrNotYourTurn), errors.Is(err, lobby.ErrNotSeated):
		return fiber.StatusForbidden
	case errors.Is(err, engine.ErrInsufficientFunds):
		return fiber.StatusPaymentRequired
	case errors.Is(err, engine.ErrInvalidAction),
		errors.Is(err, engine.ErrIllegalPropertyOperation),
		errors.Is(err, engine.ErrNotEnoughPlayers),
		errors.Is(err, lobby.ErrGameNotOpen),
		errors.Is(err, lobby.ErrAlreadyJoined):
		return fiber.StatusConflict
	case errors.Is(err, registry.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
