package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrNotYourTurn   = fmt.Errorf("%w: not your turn", ErrInvalidAction)
	ErrWrongPhase    = fmt.Errorf("%w: not allowed right now", ErrInvalidAction)
	ErrUnknownAction = fmt.Errorf("%w: unknown action", ErrInvalidAction)
	ErrUnknownPlayer = fmt.Errorf("%w: unknown player", ErrInvalidAction)
	ErrNotInJail     = fmt.Errorf("%w: not in jail", ErrInvalidAction)
	ErrNoJailCard    = fmt.Errorf("%w: no get out of jail card", ErrInvalidAction)
	ErrGameOver      = fmt.Errorf("%w: game is over", ErrInvalidAction)
	ErrPlayerOut     = fmt.Errorf("%w: player is bankrupt", ErrInvalidAction)

	ErrIllegalPropertyOperation = errors.New("illegal property operation")
	ErrNotBuyable               = fmt.Errorf("%w: not a property", ErrIllegalPropertyOperation)
	ErrAlreadyOwned             = fmt.Errorf("%w: already owned", ErrIllegalPropertyOperation)
	ErrNotOwner                 = fmt.Errorf("%w: not the owner", ErrIllegalPropertyOperation)
	ErrAlreadyMortgaged         = fmt.Errorf("%w: already mortgaged", ErrIllegalPropertyOperation)
	ErrNotMortgaged             = fmt.Errorf("%w: not mortgaged", ErrIllegalPropertyOperation)
	ErrHasBuildings             = fmt.Errorf("%w: sell buildings first", ErrIllegalPropertyOperation)
	ErrNotBuildable             = fmt.Errorf("%w: cannot build here", ErrIllegalPropertyOperation)
	ErrMaxLevel                 = fmt.Errorf("%w: already has a hotel", ErrIllegalPropertyOperation)
	ErrIncompleteGroup          = fmt.Errorf("%w: colour group not complete", ErrIllegalPropertyOperation)
	ErrGroupMortgaged           = fmt.Errorf("%w: colour group has a mortgage", ErrIllegalPropertyOperation)
	ErrUnevenBuilding           = fmt.Errorf("%w: build evenly across the group", ErrIllegalPropertyOperation)

	// ErrInsufficientFunds only rejects voluntary spending. Owed payments turn
	// into bankruptcy instead.
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrNotEnoughPlayers = errors.New("need at least two players")
	ErrDuplicatePlayer  = errors.New("duplicate player")
	ErrUnknownEffect    = errors.New("unknown card effect")
	ErrCorrupted        = errors.New("corrupted session")
)

// FatalError aborts the session it came from.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	if e == nil || e.Err == nil {
		return "fatal engine error"
	}
	return "fatal engine error: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func fatal(err error) error {
	return &FatalError{Err: err}
}

func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
