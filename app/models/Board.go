package models

// SpaceKind identifies what happens when a player lands on a space.
type SpaceKind string

const (
	SpaceGo        SpaceKind = "go"
	SpaceProperty  SpaceKind = "property"
	SpaceRailroad  SpaceKind = "railroad"
	SpaceUtility   SpaceKind = "utility"
	SpaceTax       SpaceKind = "tax"
	SpaceCommunity SpaceKind = "community"
	SpaceFortune   SpaceKind = "fortune"
	SpaceJail      SpaceKind = "jail"
	SpaceBank      SpaceKind = "bank"
	SpaceGoToJail  SpaceKind = "gotojail"
)

// Buyable reports whether spaces of this kind can be owned.
func (k SpaceKind) Buyable() bool {
	return k == SpaceProperty || k == SpaceRailroad || k == SpaceUtility
}

type Space struct {
	Position int       `json:"position"`
	Name     string    `json:"name"`
	Kind     SpaceKind `json:"type"`
	Tax      int       `json:"tax,omitempty"`
}

// Property is the static definition of a buyable space. Id equals the board position.
type Property struct {
	Id        int       `json:"position"`
	Name      string    `json:"name"`
	Kind      SpaceKind `json:"type"`
	Group     string    `json:"group"`
	Price     int       `json:"price"`
	Rent      []int     `json:"rent"`
	HouseCost int       `json:"housecost"`
}

// Mortgage is the amount paid out when the property is mortgaged.
func (p Property) Mortgage() int {
	return p.Price / 2
}

// PropertyState is the mutable side of a property during a game.
type PropertyState struct {
	Id        int    `json:"id"`
	Owner     string `json:"owner,omitempty"`
	Level     int    `json:"level"`
	Mortgaged bool   `json:"mortgaged"`
}
