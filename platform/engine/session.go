// Package engine is the rules core of the property trading game. A Session is
// a single-threaded state machine: callers serialise access to it, and every
// pause for player input is an explicit Phase rather than a blocking call.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg"
	"github.com/DedS3t/monopoly-engine/platform/bank"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
)

const (
	StartingCash = 1500

	noPending = -1
	logSize   = 20
)

type Session struct {
	id      string
	board   *board.Board
	ledger  *Ledger
	pool    *bank.Pool
	decks   map[models.DeckKind]*deck.Deck
	players []*Player
	byId    map[string]*Player

	turn     int
	round    int
	doubles  int
	lastRoll Roll
	phase    Phase
	pending  int
	winner   string

	rng    *rand.Rand
	roller Roller
	log    logrus.FieldLogger
	events []string
}

type options struct {
	seed   *int64
	roller Roller
	cash   int
	board  *board.Board
	decks  map[models.DeckKind][]models.Card
	logger logrus.FieldLogger
}

type Option func(*options)

// WithSeed fixes the session PRNG used for dice, shuffles and rare card picks.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

func WithRoller(r Roller) Option {
	return func(o *options) { o.roller = r }
}

func WithStartingCash(cash int) Option {
	return func(o *options) { o.cash = cash }
}

func WithBoard(b *board.Board) Option {
	return func(o *options) { o.board = b }
}

// WithDeck replaces a deck with cards in the given order, unshuffled.
func WithDeck(kind models.DeckKind, cards []models.Card) Option {
	return func(o *options) { o.decks[kind] = cards }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) (*options, *rand.Rand, error) {
	o := &options{
		cash:   StartingCash,
		decks:  make(map[models.DeckKind][]models.Card),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.board == nil {
		b, err := board.Load()
		if err != nil {
			return nil, nil, err
		}
		o.board = b
	}
	if o.seed == nil {
		seed, err := pkg.NewSeed()
		if err != nil {
			return nil, nil, err
		}
		o.seed = &seed
	}
	rng := rand.New(rand.NewSource(*o.seed))
	if o.roller == nil {
		o.roller = randRoller{rng: rng}
	}
	return o, rng, nil
}

// New starts a game with every player on Go holding the starting cash.
func New(id string, seats []Seat, opts ...Option) (*Session, error) {
	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	o, rng, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		id:      id,
		board:   o.board,
		pool:    bank.NewPool(0),
		decks:   make(map[models.DeckKind]*deck.Deck),
		byId:    make(map[string]*Player),
		phase:   PhaseAwaitingRoll,
		pending: noPending,
		rng:     rng,
		roller:  o.roller,
		log:     o.logger.WithField("session", id),
	}
	for _, seat := range seats {
		if seat.Id == "" {
			return nil, ErrUnknownPlayer
		}
		if _, dup := s.byId[seat.Id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, seat.Id)
		}
		p := newPlayer(seat, o.cash)
		s.players = append(s.players, p)
		s.byId[p.Id] = p
	}
	s.ledger = newLedger(s.board, s.byId)
	for _, kind := range []models.DeckKind{models.DeckFortune, models.DeckCommunity} {
		if cards, ok := o.decks[kind]; ok {
			s.decks[kind] = deck.New(kind, cards, nil)
			continue
		}
		s.decks[kind] = deck.New(kind, deck.Catalog(kind), rng)
	}
	s.log.WithField("players", len(s.players)).Info("session created")
	return s, nil
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Active() bool {
	return s.phase != PhaseGameOver
}

func (s *Session) Winner() string {
	return s.winner
}

func (s *Session) BankPool() int {
	return s.pool.Balance()
}

func (s *Session) Ledger() *Ledger {
	return s.ledger
}

func (s *Session) Player(id string) (*Player, bool) {
	p, ok := s.byId[id]
	return p, ok
}

func (s *Session) current() *Player {
	return s.players[s.turn]
}

func (s *Session) CurrentPlayer() string {
	return s.current().Id
}

// Submit applies one input from playerID. Rejected actions leave the session
// untouched; a fatal error ends the session.
func (s *Session) Submit(playerID string, a Action) error {
	p, ok := s.byId[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if s.phase == PhaseGameOver {
		return ErrGameOver
	}
	if p.Bankrupt {
		return ErrPlayerOut
	}
	if a.Kind == ActionForceEnd {
		s.record("%s ended the game", p.Username)
		return s.ForceEnd()
	}
	if p != s.current() {
		return ErrNotYourTurn
	}

	var err error
	switch a.Kind {
	case ActionRollDice:
		err = s.rollDice(p)
	case ActionBuyDecision:
		err = s.decideBuy(p, a.Buy)
	case ActionPayJailFine:
		err = s.payJailFine(p)
	case ActionUseJailCard:
		err = s.useJailCard(p)
	case ActionMortgage, ActionUnmortgage, ActionBuild:
		err = s.manage(p, a)
	case ActionEndTurn:
		err = s.endTurn()
	default:
		err = ErrUnknownAction
	}
	return s.guard(err)
}

// manage covers the property actions allowed once the dice have been rolled.
func (s *Session) manage(p *Player, a Action) error {
	if s.phase != PhaseAwaitingEndTurn && s.phase != PhaseAwaitingBuyDecision {
		return ErrWrongPhase
	}
	name := s.board.SpaceAt(a.PropertyID).Name
	switch a.Kind {
	case ActionMortgage:
		if err := s.ledger.Mortgage(p, a.PropertyID); err != nil {
			return err
		}
		s.record("%s mortgaged %s", p.Username, name)
	case ActionUnmortgage:
		if err := s.ledger.Unmortgage(p, a.PropertyID); err != nil {
			return err
		}
		s.record("%s lifted the mortgage on %s", p.Username, name)
	case ActionBuild:
		if err := s.ledger.Build(p, a.PropertyID); err != nil {
			return err
		}
		s.record("%s built on %s", p.Username, name)
	}
	return nil
}

func (s *Session) guard(err error) error {
	if err != nil && IsFatal(err) {
		s.log.WithError(err).Error("session aborted")
		s.phase = PhaseGameOver
		s.pending = noPending
	}
	return err
}

// ForceEnd stops the game from any state and names the richest remaining
// player by net worth. Ties go to the earlier seat.
func (s *Session) ForceEnd() error {
	if s.phase == PhaseGameOver {
		return ErrGameOver
	}
	var best *Player
	bestWorth := 0
	for _, p := range s.players {
		if p.Bankrupt {
			continue
		}
		if w := s.ledger.NetWorth(p); best == nil || w > bestWorth {
			best, bestWorth = p, w
		}
	}
	if best == nil {
		return s.guard(fatal(fmt.Errorf("%w: no solvent player", ErrCorrupted)))
	}
	s.finish(best.Id)
	return nil
}

func (s *Session) finish(winner string) {
	s.winner = winner
	s.phase = PhaseGameOver
	s.pending = noPending
	if p, ok := s.byId[winner]; ok {
		s.record("%s wins", p.Username)
	}
	s.log.WithField("winner", winner).Info("game over")
}

func (s *Session) record(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.events = append(s.events, msg)
	if len(s.events) > logSize {
		s.events = s.events[len(s.events)-logSize:]
	}
	s.log.Debug(msg)
}
