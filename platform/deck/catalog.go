package deck

import "github.com/DedS3t/monopoly-engine/app/models"

var fortune = []models.Card{
	{Id: 1, Info: "Advance to Go", Effect: models.MoveTo{Target: 0}},
	{Id: 2, Info: "Advance to Illinois Avenue", Effect: models.MoveTo{Target: 24}},
	{Id: 3, Info: "Advance to St. Charles Place", Effect: models.MoveTo{Target: 11}},
	{Id: 4, Info: "Take a trip to Reading Railroad", Effect: models.MoveTo{Target: 5}},
	{Id: 5, Info: "Go back three spaces", Effect: models.MoveBy{Steps: -3}},
	{Id: 6, Info: "Go directly to jail", Effect: models.GoToJail{}},
	{Id: 7, Info: "Get out of jail free", Effect: models.JailFree{}},
	{Id: 8, Info: "Bank pays you a dividend of $50", Effect: models.Money{Amount: 50}},
	{Id: 9, Info: "Speeding fine, pay $15 to the bank", Effect: models.Tax{Amount: 15}},
	{Id: 10, Info: "General repairs: $25 per house, $100 per hotel", Effect: models.Repairs{PerHouse: 25, PerHotel: 100}},
	{Id: 11, Info: "Elected chairman of the board, pay each player $50", Effect: models.PayEach{Amount: 50}},
	{Id: 12, Info: "Your building loan matures, the bank lends you $150", Effect: models.Loan{Amount: 150}},
	{Id: 13, Info: "You lost your wallet, lose $20", Effect: models.Money{Amount: -20}},
	{Id: 14, Info: "Double your money", Rare: true, Effect: models.DoubleMoney{}},
	{Id: 15, Info: "Steal a random property", Rare: true, Effect: models.StealProperty{}},
	{Id: 16, Info: "Rob the bank: take the whole pool", Rare: true, Effect: models.StealBank{}},
}

var community = []models.Card{
	{Id: 101, Info: "Advance to Go", Effect: models.MoveTo{Target: 0}},
	{Id: 102, Info: "Bank error in your favour, collect $200", Effect: models.Money{Amount: 200}},
	{Id: 103, Info: "Doctor's fee, pay $50", Effect: models.Tax{Amount: 50}},
	{Id: 104, Info: "From sale of stock you get $50", Effect: models.Money{Amount: 50}},
	{Id: 105, Info: "Get out of jail free", Effect: models.JailFree{}},
	{Id: 106, Info: "Go directly to jail", Effect: models.GoToJail{}},
	{Id: 107, Info: "Holiday fund matures, receive $100", Effect: models.Money{Amount: 100}},
	{Id: 108, Info: "Income tax refund, collect up to $20 from the pool", Effect: models.Refund{Amount: 20}},
	{Id: 109, Info: "It is your birthday, collect $10 from every player", Effect: models.CollectEach{Amount: 10}},
	{Id: 110, Info: "Hospital fees, pay $100", Effect: models.Tax{Amount: 100}},
	{Id: 111, Info: "School fees, pay $50", Effect: models.Tax{Amount: 50}},
	{Id: 112, Info: "Street repairs: $40 per house, $115 per hotel", Effect: models.Repairs{PerHouse: 40, PerHotel: 115}},
	{Id: 113, Info: "Student loan, the bank lends you $100", Effect: models.Loan{Amount: 100}},
	{Id: 114, Info: "You inherit $100", Effect: models.Money{Amount: 100}},
	{Id: 115, Info: "Claim a free unowned property", Rare: true, Effect: models.FreeProperty{}},
	{Id: 116, Info: "Free building upgrade", Rare: true, Effect: models.FreeUpgrade{}},
}

// Catalog returns a copy of the full card list for a deck.
func Catalog(kind models.DeckKind) []models.Card {
	var src []models.Card
	switch kind {
	case models.DeckFortune:
		src = fortune
	case models.DeckCommunity:
		src = community
	}
	out := make([]models.Card, len(src))
	for i, c := range src {
		c.Deck = kind
		out[i] = c
	}
	return out
}

// Lookup finds a card in either catalog by id.
func Lookup(id int) (models.Card, bool) {
	for _, kind := range []models.DeckKind{models.DeckFortune, models.DeckCommunity} {
		for _, c := range Catalog(kind) {
			if c.Id == id {
				return c, true
			}
		}
	}
	return models.Card{}, false
}
