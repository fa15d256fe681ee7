package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
)

func TestNewRejectsBadSeats(t *testing.T) {
	tcs := []struct {
		name  string
		seats []Seat
		want  error
	}{
		{"single player", []Seat{{Id: "p1"}}, ErrNotEnoughPlayers},
		{"duplicate", []Seat{{Id: "p1"}, {Id: "p1"}}, ErrDuplicatePlayer},
		{"empty id", []Seat{{Id: "p1"}, {Id: ""}}, ErrUnknownPlayer},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("table", tc.seats, WithSeed(1), WithLogger(quietLogger()))
			if !errors.Is(err, tc.want) {
				t.Fatalf("New error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewSeatsPlayersOnGo(t *testing.T) {
	s, err := New("table", []Seat{{Id: "p1", Username: "alice"}, {Id: "p2"}},
		WithSeed(7), WithLogger(quietLogger()), WithStartingCash(1000))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	state := s.Snapshot()
	if state.CurrentPlayer != "p1" || state.Phase != string(PhaseAwaitingRoll) || state.Pending != PendingRoll {
		t.Fatalf("unexpected opening state: %+v", state)
	}
	for _, p := range state.Players {
		if p.Balance != 1000 || p.Pos != 0 {
			t.Fatalf("player %s starts with cash=%d pos=%d", p.Id, p.Balance, p.Pos)
		}
	}
	if state.Players[1].Username != "p2" {
		t.Fatalf("username defaults to %q, want id", state.Players[1].Username)
	}
	if len(state.Decks[models.DeckFortune]) != 16 || len(state.Decks[models.DeckCommunity]) != 16 {
		t.Fatalf("deck sizes %d/%d", len(state.Decks[models.DeckFortune]), len(state.Decks[models.DeckCommunity]))
	}
}

func TestSubmitRejections(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2"})
	if err := s.Submit("ghost", RollDice()); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown player error = %v", err)
	}
	if err := s.Submit("p1", Action{Kind: "dance"}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unknown action error = %v", err)
	}
	if err := s.Submit("p1", EndTurn()); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("early end turn error = %v", err)
	}
	mustSubmit(t, s, "p2", ForceEnd())
	if err := s.Submit("p1", RollDice()); !errors.Is(err, ErrGameOver) {
		t.Fatalf("after game over error = %v", err)
	}
	if err := s.Timeout(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("timeout after game over error = %v", err)
	}
}

func TestForceEndPicksRichest(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2", "p3"})
	give(t, s, "p2", 39)
	give(t, s, "p3", 37)
	s.ledger.states[37].Mortgaged = true

	mustSubmit(t, s, "p3", ForceEnd())
	if s.Winner() != "p2" || s.Active() {
		t.Fatalf("winner = %q active = %v, want p2 finished", s.Winner(), s.Active())
	}
	if s.Snapshot().Pending != "" {
		t.Fatal("finished game still has a pending input")
	}
}

func TestBankruptPlayerCannotForceEnd(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2", "p3"}, Roll{1, 3})
	mustPlayer(t, s, "p1").Cash = 120
	mustSubmit(t, s, "p1", RollDice()) // income tax 200

	if !mustPlayer(t, s, "p1").Bankrupt {
		t.Fatal("p1 should be bankrupt after the tax")
	}
	if err := s.Submit("p1", ForceEnd()); !errors.Is(err, ErrPlayerOut) {
		t.Fatalf("force end from bankrupt player error = %v", err)
	}
	if !s.Active() || s.Winner() != "" {
		t.Fatalf("game ended by a bankrupt player: active=%v winner=%q", s.Active(), s.Winner())
	}
	mustSubmit(t, s, "p2", ForceEnd())
	if s.Active() {
		t.Fatal("seated player could not end the game")
	}
}

func TestForceEndTieGoesToEarlierSeat(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2"})
	mustPlayer(t, s, "p1").Bankrupt = true
	if err := s.ForceEnd(); err != nil {
		t.Fatalf("ForceEnd returned error: %v", err)
	}
	if s.Winner() != "p2" {
		t.Fatalf("winner = %q, want p2 when p1 is out", s.Winner())
	}

	s, _ = newTestSession(t, []string{"p1", "p2"})
	if err := s.ForceEnd(); err != nil {
		t.Fatalf("ForceEnd returned error: %v", err)
	}
	if s.Winner() != "p1" {
		t.Fatalf("winner = %q, want p1 on a tie", s.Winner())
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2"},
		Roll{3, 4}, // p1 -> 7
		Roll{2, 2}, // p2 -> 4, income tax
	)
	mustSubmit(t, s, "p1", RollDice())
	mustSubmit(t, s, "p1", BuyDecision(true))
	mustSubmit(t, s, "p1", EndTurn())
	mustSubmit(t, s, "p2", RollDice())
	mustSubmit(t, s, "p2", EndTurn())
	s.ledger.states[7].Level = 0
	mustPlayer(t, s, "p2").JailCards = 1

	want := s.Snapshot()
	if want.DoublesStreak != 1 || want.BankPool != 200 {
		t.Fatalf("unexpected snapshot before restore: %+v", want)
	}
	restored, err := Restore(want, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got := restored.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("restored snapshot differs:\n got %+v\nwant %+v", got, want)
	}
	if restored.Ledger().Owner(7) == nil || !restored.Ledger().Owner(7).Owns(7) {
		t.Fatal("restored ownership out of sync")
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2"})
	give(t, s, "p1", 1)
	state := s.Snapshot()
	state.Players[0].Properties[0] = 39
	state.Properties[0].Owner = "p2"
	state.Decks[models.DeckFortune][0] = 2
	if !mustPlayer(t, s, "p1").Owns(1) || s.Ledger().Owner(1).Id != "p1" {
		t.Fatal("snapshot aliases ledger state")
	}
	if s.Snapshot().Decks[models.DeckFortune][0] != 1 {
		t.Fatal("snapshot aliases deck")
	}
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	s, _ := newTestSession(t, []string{"p1", "p2"})
	base := s.Snapshot()

	tcs := []struct {
		name   string
		mutate func(*models.GameState)
	}{
		{"mid move phase", func(st *models.GameState) { st.Phase = string(PhaseMoving) }},
		{"turn out of range", func(st *models.GameState) { st.TurnIndex = 5 }},
		{"unknown owner", func(st *models.GameState) { st.Properties[0].Owner = "ghost" }},
		{"unknown card", func(st *models.GameState) { st.Decks[models.DeckFortune] = []int{101} }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			st := s.Snapshot()
			tc.mutate(&st)
			if _, err := Restore(st, WithLogger(quietLogger())); err == nil {
				t.Fatal("Restore accepted corrupt state")
			}
		})
	}
	if _, err := Restore(base, WithLogger(quietLogger())); err != nil {
		t.Fatalf("Restore rejected a clean state: %v", err)
	}
}

func TestParseAction(t *testing.T) {
	tcs := []struct {
		dto  models.ActionDto
		want Action
	}{
		{models.ActionDto{Type: "roll-dice"}, RollDice()},
		{models.ActionDto{Type: "buy-decision", Buy: true}, BuyDecision(true)},
		{models.ActionDto{Type: "mortgage", Property: 39}, Mortgage(39)},
		{models.ActionDto{Type: "build", Property: 1}, Build(1)},
		{models.ActionDto{Type: "end-turn", Property: 3}, EndTurn()},
		{models.ActionDto{Type: "force-end"}, ForceEnd()},
	}
	for _, tc := range tcs {
		got, err := ParseAction(tc.dto)
		if err != nil {
			t.Fatalf("ParseAction(%+v) returned error: %v", tc.dto, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAction(%+v) = %+v, want %+v", tc.dto, got, tc.want)
		}
	}
	if _, err := ParseAction(models.ActionDto{Type: "trade"}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unknown type error = %v", err)
	}
}
