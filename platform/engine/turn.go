package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

const (
	GoBonus    = 200
	MaxDoubles = 3
)

type Phase string

const (
	PhaseAwaitingRoll        Phase = "awaiting_roll"
	PhaseMoving              Phase = "moving"
	PhaseResolvingSpace      Phase = "resolving_space"
	PhaseAwaitingBuyDecision Phase = "awaiting_buy_decision"
	PhaseAwaitingEndTurn     Phase = "awaiting_end_turn"
	PhaseTurnComplete        Phase = "turn_complete"
	PhaseGameOver            Phase = "game_over"
)

func (s *Session) rollDice(p *Player) error {
	if s.phase == PhaseAwaitingEndTurn && s.extraRoll(p) {
		s.phase = PhaseAwaitingRoll
	}
	if s.phase != PhaseAwaitingRoll {
		return ErrWrongPhase
	}

	roll := s.roller.Roll()
	s.lastRoll = roll
	s.record("%s rolled %d and %d", p.Username, roll[0], roll[1])
	s.log.WithField("player", p.Id).WithField("roll", roll).Debug("dice rolled")

	if p.InJail {
		return s.rollInJail(p, roll)
	}

	if roll.Doubles() {
		s.doubles++
		if s.doubles >= MaxDoubles {
			s.record("%s rolled doubles %d times in a row", p.Username, MaxDoubles)
			s.sendToJail(p)
			return s.completeTurn()
		}
	} else {
		s.doubles = 0
	}

	if err := s.move(p, roll.Total()); err != nil {
		return err
	}
	return s.afterResolve(p)
}

// move walks p by steps and resolves the space it stops on. Only forward
// moves that wrap past Go pay the bonus.
func (s *Session) move(p *Player, steps int) error {
	s.phase = PhaseMoving
	from := p.Position
	to := ((from+steps)%board.Size + board.Size) % board.Size
	if steps > 0 && to < from {
		p.Cash += GoBonus
		s.record("%s passed Go and collected $%d", p.Username, GoBonus)
	}
	p.Position = to
	return s.resolveSpace(p)
}

func (s *Session) resolveSpace(p *Player) error {
	s.phase = PhaseResolvingSpace
	space := s.board.SpaceAt(p.Position)
	s.record("%s landed on %s", p.Username, space.Name)

	switch space.Kind {
	case models.SpaceProperty, models.SpaceRailroad, models.SpaceUtility:
		owner := s.ledger.Owner(space.Position)
		switch {
		case owner == nil:
			s.pending = space.Position
		case owner != p:
			if rent := s.ledger.Rent(space.Position, s.lastRoll); rent > 0 {
				if s.payPlayer(p, owner, rent) {
					s.record("%s paid $%d rent to %s", p.Username, rent, owner.Username)
				}
			}
		}
	case models.SpaceTax:
		if s.payBank(p, space.Tax) {
			s.record("%s paid $%d tax", p.Username, space.Tax)
		}
	case models.SpaceCommunity:
		return s.drawCard(p, models.DeckCommunity)
	case models.SpaceFortune:
		return s.drawCard(p, models.DeckFortune)
	case models.SpaceGoToJail:
		s.sendToJail(p)
	case models.SpaceBank:
		if s.lastRoll.Doubles() {
			won := s.pool.PayoutAll()
			p.Cash += won
			s.record("%s hit the bank for $%d", p.Username, won)
		}
	case models.SpaceGo, models.SpaceJail:
	default:
		return fatal(fmt.Errorf("%w: space %d has kind %q", ErrCorrupted, space.Position, space.Kind))
	}
	return nil
}

// afterResolve picks the next input required once a move has settled.
func (s *Session) afterResolve(p *Player) error {
	switch {
	case s.phase == PhaseGameOver:
		return nil
	case p.Bankrupt:
		s.pending = noPending
		return s.completeTurn()
	case s.pending != noPending:
		s.phase = PhaseAwaitingBuyDecision
	default:
		s.phase = PhaseAwaitingEndTurn
	}
	return nil
}

func (s *Session) decideBuy(p *Player, buy bool) error {
	if s.phase != PhaseAwaitingBuyDecision {
		return ErrWrongPhase
	}
	id := s.pending
	if buy {
		if err := s.ledger.Buy(p, id); err != nil {
			return err
		}
		s.record("%s bought %s", p.Username, s.board.SpaceAt(id).Name)
	} else {
		s.record("%s declined %s", p.Username, s.board.SpaceAt(id).Name)
	}
	s.pending = noPending
	s.phase = PhaseAwaitingEndTurn
	return nil
}

func (s *Session) endTurn() error {
	if s.phase != PhaseAwaitingEndTurn {
		return ErrWrongPhase
	}
	return s.completeTurn()
}

func (s *Session) extraRoll(p *Player) bool {
	return s.doubles > 0 && !p.InJail && !p.Bankrupt
}

// completeTurn either hands the same player another roll after doubles or
// passes the turn on.
func (s *Session) completeTurn() error {
	if s.phase == PhaseGameOver {
		return nil
	}
	s.phase = PhaseTurnComplete
	if s.extraRoll(s.current()) {
		s.phase = PhaseAwaitingRoll
		return nil
	}
	return s.advance()
}

// advance moves the turn pointer to the next player who is not bankrupt.
func (s *Session) advance() error {
	s.doubles = 0
	s.pending = noPending
	n := len(s.players)
	for i := 1; i <= n; i++ {
		next := (s.turn + i) % n
		if next == 0 {
			s.round++
		}
		if !s.players[next].Bankrupt {
			s.turn = next
			s.phase = PhaseAwaitingRoll
			return nil
		}
	}
	return fatal(fmt.Errorf("%w: no player left to take a turn", ErrCorrupted))
}

// Timeout applies the default choice for a stalled turn: a pending purchase is
// declined and the turn passes on, forfeiting any extra roll.
func (s *Session) Timeout() error {
	if s.phase == PhaseGameOver {
		return ErrGameOver
	}
	p := s.current()
	if s.phase == PhaseAwaitingBuyDecision {
		s.record("%s did not decide on %s", p.Username, s.board.SpaceAt(s.pending).Name)
	}
	s.record("%s timed out", p.Username)
	s.log.WithField("player", p.Id).WithField("phase", s.phase).Info("turn timed out")
	return s.guard(s.advance())
}
