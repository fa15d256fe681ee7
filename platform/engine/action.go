package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
)

type ActionKind string

const (
	ActionRollDice    ActionKind = "roll-dice"
	ActionBuyDecision ActionKind = "buy-decision"
	ActionPayJailFine ActionKind = "pay-jail-fine"
	ActionUseJailCard ActionKind = "use-jail-card"
	ActionMortgage    ActionKind = "mortgage"
	ActionUnmortgage  ActionKind = "unmortgage"
	ActionBuild       ActionKind = "build"
	ActionEndTurn     ActionKind = "end-turn"
	ActionForceEnd    ActionKind = "force-end"
)

type Action struct {
	Kind       ActionKind
	Buy        bool
	PropertyID int
}

func RollDice() Action            { return Action{Kind: ActionRollDice} }
func BuyDecision(buy bool) Action { return Action{Kind: ActionBuyDecision, Buy: buy} }
func PayJailFine() Action         { return Action{Kind: ActionPayJailFine} }
func UseJailCard() Action         { return Action{Kind: ActionUseJailCard} }
func Mortgage(id int) Action      { return Action{Kind: ActionMortgage, PropertyID: id} }
func Unmortgage(id int) Action    { return Action{Kind: ActionUnmortgage, PropertyID: id} }
func Build(id int) Action         { return Action{Kind: ActionBuild, PropertyID: id} }
func EndTurn() Action             { return Action{Kind: ActionEndTurn} }
func ForceEnd() Action            { return Action{Kind: ActionForceEnd} }

// ParseAction converts the wire form used by the HTTP and socket layers.
func ParseAction(dto models.ActionDto) (Action, error) {
	kind := ActionKind(dto.Type)
	switch kind {
	case ActionRollDice, ActionPayJailFine, ActionUseJailCard, ActionEndTurn, ActionForceEnd:
		return Action{Kind: kind}, nil
	case ActionBuyDecision:
		return BuyDecision(dto.Buy), nil
	case ActionMortgage, ActionUnmortgage, ActionBuild:
		return Action{Kind: kind, PropertyID: dto.Property}, nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, dto.Type)
}
