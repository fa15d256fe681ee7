package registry

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

type submitRequest struct {
	player string
	action engine.Action
}

type timeoutRequest struct{}

// deadlineTick fires when a turn deadline passes. Ticks from an older
// generation belong to a turn that already moved on and are dropped.
type deadlineTick struct {
	gen uint64
}

type reply struct {
	state models.GameState
	err   error
}
