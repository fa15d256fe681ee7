package models

import "time"

const (
	GameStatusOpen       = "open"
	GameStatusInProgress = "in progress"
	GameStatusFinished   = "finished"
)

type Game struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Owner      string    `json:"owner"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	CreatedAt  time.Time `json:"created_at" pg:"default:now()"`
	FinishedAt time.Time `json:"finished_at"`
}

type GameCreateDto struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}

type ActionDto struct {
	Type     string `json:"type"`
	Buy      bool   `json:"buy"`
	Property int    `json:"property"`
}

// GameState is the read-only snapshot handed to the interaction layer and
// stored for crash recovery.
type GameState struct {
	Id              string             `json:"id"`
	Active          bool               `json:"active"`
	Phase           string             `json:"phase"`
	Pending         string             `json:"pending,omitempty"`
	PendingProperty int                `json:"pending_property,omitempty"`
	CurrentPlayer   string             `json:"current_player"`
	TurnIndex       int                `json:"turn_index"`
	Round           int                `json:"round"`
	DoublesStreak   int                `json:"doubles_streak"`
	LastRoll        [2]int             `json:"last_roll"`
	BankPool        int                `json:"bank_pool"`
	Players         []PlayerDto        `json:"players"`
	Properties      []PropertyState    `json:"properties"`
	Decks           map[DeckKind][]int `json:"decks"`
	Winner          string             `json:"winner,omitempty"`
	Log             []string           `json:"log,omitempty"`
}
