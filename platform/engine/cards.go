package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

func (s *Session) drawCard(p *Player, kind models.DeckKind) error {
	d, ok := s.decks[kind]
	if !ok {
		return fatal(fmt.Errorf("%w: no %s deck", ErrCorrupted, kind))
	}
	card, err := d.Draw()
	if err != nil {
		return fatal(err)
	}
	s.record("%s drew %q", p.Username, card.Info)
	s.log.WithField("player", p.Id).WithField("card", card.Id).Debug("card drawn")
	err = s.applyCard(p, card)
	d.Resolve(card)
	return err
}

// applyCard interprets every effect variant. An unknown variant means the
// catalog is broken and aborts the session.
func (s *Session) applyCard(p *Player, card models.Card) error {
	switch e := card.Effect.(type) {
	case models.MoveTo:
		steps := ((e.Target-p.Position)%board.Size + board.Size) % board.Size
		return s.move(p, steps)
	case models.MoveBy:
		return s.move(p, e.Steps)
	case models.Money:
		if e.Amount >= 0 {
			p.Cash += e.Amount
			return nil
		}
		s.chargeBank(p, -e.Amount)
	case models.Tax:
		s.payBank(p, e.Amount)
	case models.Refund:
		p.Cash += s.pool.Withdraw(e.Amount)
	case models.Loan:
		p.Cash += s.pool.Lend(e.Amount)
	case models.PayEach:
		others := s.opponents(p)
		if p.Cash < e.Amount*len(others) {
			s.bankruptToBank(p)
			return nil
		}
		for _, o := range others {
			s.payPlayer(p, o, e.Amount)
		}
	case models.CollectEach:
		for _, o := range s.opponents(p) {
			if s.phase == PhaseGameOver {
				break
			}
			s.payPlayer(o, p, e.Amount)
		}
	case models.Repairs:
		houses, hotels := s.ledger.Buildings(p)
		s.payBank(p, houses*e.PerHouse+hotels*e.PerHotel)
	case models.GoToJail:
		s.sendToJail(p)
	case models.JailFree:
		p.JailCards++
	case models.DoubleMoney:
		if p.Cash > 0 {
			p.Cash *= 2
		}
	case models.StealProperty:
		var ids []int
		for _, o := range s.opponents(p) {
			ids = append(ids, o.Properties()...)
		}
		if id, ok := s.pick(ids); ok {
			s.ledger.Transfer(s.ledger.Owner(id), p, id)
			s.record("%s stole %s", p.Username, s.board.SpaceAt(id).Name)
		}
	case models.FreeProperty:
		if id, ok := s.pick(s.ledger.unowned()); ok {
			s.ledger.Transfer(nil, p, id)
			s.record("%s claimed %s", p.Username, s.board.SpaceAt(id).Name)
		}
	case models.StealBank:
		p.Cash += s.pool.PayoutAll()
	case models.FreeUpgrade:
		if id, ok := s.pick(s.ledger.upgradable(p)); ok {
			s.ledger.upgrade(id)
			s.record("%s upgraded %s for free", p.Username, s.board.SpaceAt(id).Name)
		}
	default:
		return fatal(fmt.Errorf("%w: card %d has %T", ErrUnknownEffect, card.Id, card.Effect))
	}
	return nil
}

func (s *Session) pick(ids []int) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	return ids[s.rng.Intn(len(ids))], true
}

// opponents lists the other players still in the game, in seat order.
func (s *Session) opponents(p *Player) []*Player {
	var out []*Player
	for _, o := range s.players {
		if o != p && !o.Bankrupt {
			out = append(out, o)
		}
	}
	return out
}
