package engine

import "github.com/DedS3t/monopoly-engine/platform/board"

const (
	JailFine     = 50
	MaxJailTurns = 3
)

func (s *Session) sendToJail(p *Player) {
	p.Position = board.JailPosition
	p.InJail = true
	p.JailTurns = 0
	s.doubles = 0
	s.record("%s goes to jail", p.Username)
	s.log.WithField("player", p.Id).Info("player jailed")
}

func (s *Session) release(p *Player) {
	p.InJail = false
	p.JailTurns = 0
}

// rollInJail handles a roll made from jail. Doubles free the player and move
// them without granting another roll; the third miss forces the fine.
func (s *Session) rollInJail(p *Player, roll Roll) error {
	if roll.Doubles() {
		s.release(p)
		s.record("%s rolled out of jail", p.Username)
		if err := s.move(p, roll.Total()); err != nil {
			return err
		}
		return s.afterResolve(p)
	}

	p.JailTurns++
	if p.JailTurns < MaxJailTurns {
		s.phase = PhaseAwaitingEndTurn
		return nil
	}

	s.release(p)
	s.record("%s served %d turns and pays the $%d fine", p.Username, MaxJailTurns, JailFine)
	s.payBank(p, JailFine)
	return s.afterResolve(p)
}

func (s *Session) payJailFine(p *Player) error {
	if s.phase != PhaseAwaitingRoll {
		return ErrWrongPhase
	}
	if !p.InJail {
		return ErrNotInJail
	}
	if p.Cash < JailFine {
		return ErrInsufficientFunds
	}
	p.Cash -= JailFine
	s.pool.Deposit(JailFine)
	s.release(p)
	s.record("%s paid $%d to leave jail", p.Username, JailFine)
	return nil
}

func (s *Session) useJailCard(p *Player) error {
	if s.phase != PhaseAwaitingRoll {
		return ErrWrongPhase
	}
	if !p.InJail {
		return ErrNotInJail
	}
	if p.JailCards == 0 {
		return ErrNoJailCard
	}
	p.JailCards--
	s.release(p)
	s.record("%s used a get out of jail free card", p.Username)
	return nil
}
