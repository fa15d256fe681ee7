package engine

import "sort"

// Seat identifies a player joining a session.
type Seat struct {
	Id       string
	Username string
}

type Player struct {
	Id        string
	Username  string
	Cash      int
	Position  int
	InJail    bool
	JailTurns int
	JailCards int
	Bankrupt  bool

	// owned mirrors PropertyState.Owner and is only touched by Ledger.Transfer.
	owned map[int]struct{}
}

func newPlayer(seat Seat, cash int) *Player {
	name := seat.Username
	if name == "" {
		name = seat.Id
	}
	return &Player{
		Id:       seat.Id,
		Username: name,
		Cash:     cash,
		owned:    make(map[int]struct{}),
	}
}

func (p *Player) Owns(id int) bool {
	_, ok := p.owned[id]
	return ok
}

// Properties returns owned property ids in board order.
func (p *Player) Properties() []int {
	ids := make([]int, 0, len(p.owned))
	for id := range p.owned {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
