package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/deck"
)

const (
	PendingRoll    = "roll"
	PendingBuy     = "buy"
	PendingEndTurn = "end-turn"
)

// Snapshot copies the visible state. It never aliases session memory, so the
// result may be shared with other goroutines.
func (s *Session) Snapshot() models.GameState {
	state := models.GameState{
		Id:            s.id,
		Active:        s.Active(),
		Phase:         string(s.phase),
		CurrentPlayer: s.current().Id,
		TurnIndex:     s.turn,
		Round:         s.round,
		DoublesStreak: s.doubles,
		LastRoll:      s.lastRoll,
		BankPool:      s.pool.Balance(),
		Properties:    s.ledger.snapshot(),
		Decks:         make(map[models.DeckKind][]int, len(s.decks)),
		Winner:        s.winner,
		Log:           append([]string(nil), s.events...),
	}
	switch s.phase {
	case PhaseAwaitingRoll:
		state.Pending = PendingRoll
	case PhaseAwaitingBuyDecision:
		state.Pending = PendingBuy
		state.PendingProperty = s.pending
	case PhaseAwaitingEndTurn:
		state.Pending = PendingEndTurn
	}
	for kind, d := range s.decks {
		state.Decks[kind] = d.Ids()
	}
	for _, p := range s.players {
		state.Players = append(state.Players, models.PlayerDto{
			Id:         p.Id,
			Username:   p.Username,
			Balance:    p.Cash,
			Pos:        p.Position,
			Properties: p.Properties(),
			Jail:       p.InJail,
			JailTurns:  p.JailTurns,
			JailCards:  p.JailCards,
			Bankrupt:   p.Bankrupt,
		})
	}
	return state
}

// Restore rebuilds a session from a stored snapshot, e.g. after a restart.
// The PRNG is reseeded, so dice do not continue the old sequence.
func Restore(state models.GameState, opts ...Option) (*Session, error) {
	seats := make([]Seat, 0, len(state.Players))
	for _, p := range state.Players {
		seats = append(seats, Seat{Id: p.Id, Username: p.Username})
	}
	s, err := New(state.Id, seats, opts...)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", state.Id, err)
	}
	if state.TurnIndex < 0 || state.TurnIndex >= len(s.players) {
		return nil, fmt.Errorf("restore %s: %w: turn index %d", state.Id, ErrCorrupted, state.TurnIndex)
	}

	for _, dto := range state.Players {
		p := s.byId[dto.Id]
		p.Cash = dto.Balance
		p.Position = dto.Pos
		p.InJail = dto.Jail
		p.JailTurns = dto.JailTurns
		p.JailCards = dto.JailCards
		p.Bankrupt = dto.Bankrupt
	}
	for _, ps := range state.Properties {
		st, ok := s.ledger.states[ps.Id]
		if !ok {
			return nil, fmt.Errorf("restore %s: %w: property %d", state.Id, ErrCorrupted, ps.Id)
		}
		var owner *Player
		if ps.Owner != "" {
			if owner, ok = s.byId[ps.Owner]; !ok {
				return nil, fmt.Errorf("restore %s: %w: owner %s", state.Id, ErrCorrupted, ps.Owner)
			}
		}
		s.ledger.Transfer(nil, owner, ps.Id)
		st.Level = ps.Level
		st.Mortgaged = ps.Mortgaged
	}
	for kind, ids := range state.Decks {
		d, err := deck.Restore(kind, ids)
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", state.Id, err)
		}
		s.decks[kind] = d
	}

	s.pool.Deposit(state.BankPool)
	s.turn = state.TurnIndex
	s.round = state.Round
	s.doubles = state.DoublesStreak
	s.lastRoll = state.LastRoll
	s.phase = Phase(state.Phase)
	s.winner = state.Winner
	s.events = append([]string(nil), state.Log...)
	if s.phase == PhaseAwaitingBuyDecision {
		s.pending = state.PendingProperty
	}
	switch s.phase {
	case PhaseAwaitingRoll, PhaseAwaitingBuyDecision, PhaseAwaitingEndTurn, PhaseGameOver:
	default:
		return nil, fmt.Errorf("restore %s: %w: phase %q", state.Id, ErrCorrupted, state.Phase)
	}
	return s, nil
}
