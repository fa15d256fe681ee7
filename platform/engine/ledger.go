package engine

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

const (
	MaxLevel = 5 // hotel

	smallUtilityMultiplier = 4
	bigUtilityMultiplier   = 10
)

// Ledger owns PropertyState for every buyable space.
type Ledger struct {
	board   *board.Board
	states  map[int]*models.PropertyState
	players map[string]*Player
}

func newLedger(b *board.Board, players map[string]*Player) *Ledger {
	l := &Ledger{
		board:   b,
		states:  make(map[int]*models.PropertyState),
		players: players,
	}
	for _, p := range b.Properties() {
		l.states[p.Id] = &models.PropertyState{Id: p.Id}
	}
	return l
}

func (l *Ledger) lookup(id int) (models.Property, *models.PropertyState, error) {
	def, err := l.board.GetById(id)
	if err != nil {
		return models.Property{}, nil, ErrNotBuyable
	}
	st, ok := l.states[id]
	if !ok {
		return models.Property{}, nil, fatal(ErrCorrupted)
	}
	return def, st, nil
}

func (l *Ledger) State(id int) (models.PropertyState, bool) {
	st, ok := l.states[id]
	if !ok {
		return models.PropertyState{}, false
	}
	return *st, true
}

// Owner returns nil for unowned or unknown properties.
func (l *Ledger) Owner(id int) *Player {
	st, ok := l.states[id]
	if !ok || st.Owner == "" {
		return nil
	}
	return l.players[st.Owner]
}

// Transfer is the only place ownership changes. A nil side means the bank.
// Building level and mortgage state travel with the property.
func (l *Ledger) Transfer(from, to *Player, id int) {
	st, ok := l.states[id]
	if !ok {
		return
	}
	if from != nil {
		delete(from.owned, id)
	}
	if to == nil {
		st.Owner = ""
		return
	}
	st.Owner = to.Id
	to.owned[id] = struct{}{}
}

// release hands a property back to the bank in its unbuilt, unmortgaged state.
func (l *Ledger) release(from *Player, id int) {
	l.Transfer(from, nil, id)
	if st, ok := l.states[id]; ok {
		st.Level = 0
		st.Mortgaged = false
	}
}

func (l *Ledger) Buy(p *Player, id int) error {
	def, st, err := l.lookup(id)
	if err != nil {
		return err
	}
	if st.Owner != "" {
		return ErrAlreadyOwned
	}
	if p.Cash < def.Price {
		return ErrInsufficientFunds
	}
	p.Cash -= def.Price
	l.Transfer(nil, p, id)
	return nil
}

// Rent is what a visitor owes for landing on id with roll.
func (l *Ledger) Rent(id int, roll Roll) int {
	def, st, err := l.lookup(id)
	if err != nil || st.Owner == "" || st.Mortgaged {
		return 0
	}
	switch def.Kind {
	case models.SpaceProperty:
		return def.Rent[st.Level]
	case models.SpaceRailroad:
		n := l.countOwned(st.Owner, def.Group)
		if n < 1 || n > len(def.Rent) {
			return 0
		}
		return def.Rent[n-1]
	case models.SpaceUtility:
		if l.countOwned(st.Owner, def.Group) == 1 {
			return roll.Total() * smallUtilityMultiplier
		}
		return roll.Total() * bigUtilityMultiplier
	}
	return 0
}

func (l *Ledger) countOwned(owner, group string) int {
	n := 0
	for _, id := range l.board.Group(group) {
		if l.states[id].Owner == owner {
			n++
		}
	}
	return n
}

// Build adds one level. The whole colour group must be owned and free of
// mortgages, and levels may differ by at most one across the group.
func (l *Ledger) Build(p *Player, id int) error {
	def, st, err := l.lookup(id)
	if err != nil {
		return err
	}
	if st.Owner != p.Id {
		return ErrNotOwner
	}
	if def.Kind != models.SpaceProperty || st.Mortgaged {
		return ErrNotBuildable
	}
	if st.Level >= MaxLevel {
		return ErrMaxLevel
	}
	for _, gid := range l.board.Group(def.Group) {
		other := l.states[gid]
		if other.Owner != p.Id {
			return ErrIncompleteGroup
		}
		if other.Mortgaged {
			return ErrGroupMortgaged
		}
		if other.Level < st.Level {
			return ErrUnevenBuilding
		}
	}
	if p.Cash < def.HouseCost {
		return ErrInsufficientFunds
	}
	p.Cash -= def.HouseCost
	st.Level++
	return nil
}

// upgradable lists colour properties p could receive a free level on.
func (l *Ledger) upgradable(p *Player) []int {
	var ids []int
	for _, id := range p.Properties() {
		def, st, err := l.lookup(id)
		if err != nil || def.Kind != models.SpaceProperty || st.Mortgaged || st.Level >= MaxLevel {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (l *Ledger) upgrade(id int) {
	if st, ok := l.states[id]; ok && st.Level < MaxLevel {
		st.Level++
	}
}

func (l *Ledger) Mortgage(p *Player, id int) error {
	def, st, err := l.lookup(id)
	if err != nil {
		return err
	}
	if st.Owner != p.Id {
		return ErrNotOwner
	}
	if st.Mortgaged {
		return ErrAlreadyMortgaged
	}
	if st.Level > 0 {
		return ErrHasBuildings
	}
	st.Mortgaged = true
	p.Cash += def.Mortgage()
	return nil
}

// UnmortgageCost is the mortgage value plus 10% interest.
func UnmortgageCost(def models.Property) int {
	m := def.Mortgage()
	return m + m/10
}

func (l *Ledger) Unmortgage(p *Player, id int) error {
	def, st, err := l.lookup(id)
	if err != nil {
		return err
	}
	if st.Owner != p.Id {
		return ErrNotOwner
	}
	if !st.Mortgaged {
		return ErrNotMortgaged
	}
	cost := UnmortgageCost(def)
	if p.Cash < cost {
		return ErrInsufficientFunds
	}
	p.Cash -= cost
	st.Mortgaged = false
	return nil
}

// Buildings counts houses and hotels owned by p.
func (l *Ledger) Buildings(p *Player) (houses, hotels int) {
	for id := range p.owned {
		st := l.states[id]
		switch {
		case st.Level == MaxLevel:
			hotels++
		case st.Level > 0:
			houses += st.Level
		}
	}
	return houses, hotels
}

// NetWorth is cash plus price and building cost of every unmortgaged property.
func (l *Ledger) NetWorth(p *Player) int {
	total := p.Cash
	for id := range p.owned {
		def, st, err := l.lookup(id)
		if err != nil || st.Mortgaged {
			continue
		}
		total += def.Price + st.Level*def.HouseCost
	}
	return total
}

func (l *Ledger) unowned() []int {
	var ids []int
	for _, def := range l.board.Properties() {
		if l.states[def.Id].Owner == "" {
			ids = append(ids, def.Id)
		}
	}
	return ids
}

func (l *Ledger) snapshot() []models.PropertyState {
	defs := l.board.Properties()
	out := make([]models.PropertyState, 0, len(defs))
	for _, def := range defs {
		out = append(out, *l.states[def.Id])
	}
	return out
}
