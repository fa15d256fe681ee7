package engine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
)

type scriptedRoller struct {
	t     *testing.T
	rolls []Roll
}

func (r *scriptedRoller) Roll() Roll {
	if len(r.rolls) == 0 {
		r.t.Fatal("scripted roller ran out of rolls")
	}
	roll := r.rolls[0]
	r.rolls = r.rolls[1:]
	return roll
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestSession seats the given players with scripted dice and one-card
// decks that pay $10, so card spaces are predictable.
func newTestSession(t *testing.T, players []string, rolls ...Roll) (*Session, *scriptedRoller) {
	t.Helper()
	seats := make([]Seat, len(players))
	for i, id := range players {
		seats[i] = Seat{Id: id, Username: id}
	}
	roller := &scriptedRoller{t: t, rolls: rolls}
	s, err := New("table", seats,
		WithSeed(1),
		WithRoller(roller),
		WithLogger(quietLogger()),
		WithDeck(models.DeckFortune, []models.Card{{Id: 1, Deck: models.DeckFortune, Info: "dividend", Effect: models.Money{Amount: 10}}}),
		WithDeck(models.DeckCommunity, []models.Card{{Id: 101, Deck: models.DeckCommunity, Info: "refund", Effect: models.Money{Amount: 10}}}),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s, roller
}

func mustSubmit(t *testing.T, s *Session, player string, a Action) {
	t.Helper()
	if err := s.Submit(player, a); err != nil {
		t.Fatalf("Submit(%s, %s) returned error: %v", player, a.Kind, err)
	}
}

// finishTurn declines any pending purchase and ends the turn.
func finishTurn(t *testing.T, s *Session, player string) {
	t.Helper()
	if s.Phase() == PhaseAwaitingBuyDecision {
		mustSubmit(t, s, player, BuyDecision(false))
	}
	mustSubmit(t, s, player, EndTurn())
}

func mustPlayer(t *testing.T, s *Session, id string) *Player {
	t.Helper()
	p, ok := s.Player(id)
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	return p
}

// give hands a property to a player without charging them.
func give(t *testing.T, s *Session, player string, ids ...int) {
	t.Helper()
	p := mustPlayer(t, s, player)
	for _, id := range ids {
		s.ledger.Transfer(s.ledger.Owner(id), p, id)
	}
}
