package models

type DeckKind string

const (
	DeckFortune   DeckKind = "fortune"
	DeckCommunity DeckKind = "community"
)

type Card struct {
	Id     int      `json:"id"`
	Deck   DeckKind `json:"deck"`
	Info   string   `json:"info"`
	Rare   bool     `json:"rare"`
	Effect Effect   `json:"-"`
}

// Effect is the closed set of things a card can do. Only types in this file
// implement it.
type Effect interface {
	effect()
}

// MoveTo advances to Target, collecting the Go bonus when the move wraps.
type MoveTo struct{ Target int }

// MoveBy moves Steps spaces; negative steps move backwards without a Go bonus.
type MoveBy struct{ Steps int }

// Money adds (or with a negative Amount removes) cash without touching the pool.
type Money struct{ Amount int }

// Tax pays Amount into the bank pool.
type Tax struct{ Amount int }

// Refund pays up to Amount out of the bank pool.
type Refund struct{ Amount int }

// Loan is paid by the bank, drawing the pool down to no lower than zero.
type Loan struct{ Amount int }

type PayEach struct{ Amount int }

type CollectEach struct{ Amount int }

// Repairs charges per house and per hotel owned, paid into the pool.
type Repairs struct {
	PerHouse int
	PerHotel int
}

type GoToJail struct{}

type JailFree struct{}

type DoubleMoney struct{}

type StealProperty struct{}

type FreeProperty struct{}

type StealBank struct{}

type FreeUpgrade struct{}

func (MoveTo) effect()        {}
func (MoveBy) effect()        {}
func (Money) effect()         {}
func (Tax) effect()           {}
func (Refund) effect()        {}
func (Loan) effect()          {}
func (PayEach) effect()       {}
func (CollectEach) effect()   {}
func (Repairs) effect()       {}
func (GoToJail) effect()      {}
func (JailFree) effect()      {}
func (DoubleMoney) effect()   {}
func (StealProperty) effect() {}
func (FreeProperty) effect()  {}
func (StealBank) effect()     {}
func (FreeUpgrade) effect()   {}
