package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/platform/engine"
)

// sessionActor is the only goroutine that touches its engine.Session.
type sessionActor struct {
	reg     *Registry
	entry   *entry
	session *engine.Session
	log     logrus.FieldLogger

	deadline  *time.Timer
	gen       uint64
	turnStart time.Time
}

func (a *sessionActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.armDeadline(ctx)
	case *submitRequest:
		err := a.session.Submit(msg.player, msg.action)
		a.settle(ctx, err, msg.player, string(msg.action.Kind))
	case *timeoutRequest:
		if err := a.deadlinePassed(); err != nil {
			a.settle(ctx, err, "", "timeout")
			return
		}
		a.settle(ctx, a.session.Timeout(), "", "timeout")
	case *deadlineTick:
		if msg.gen != a.gen || !a.session.Active() {
			return
		}
		a.log.WithField("player", a.session.CurrentPlayer()).Info("turn deadline passed")
		a.settle(ctx, a.session.Timeout(), "", "timeout")
	case *actor.Stopping:
		a.stopDeadline()
	case *actor.Stopped:
		a.log.Debug("session actor stopped")
	}
}

// settle publishes the new state after an accepted input and answers the
// asker. Rejected inputs changed nothing, so only the error goes back.
func (a *sessionActor) settle(ctx actor.Context, err error, player, action string) {
	if err != nil && !engine.IsFatal(err) {
		a.log.WithField("player", player).WithField("action", action).WithError(err).Debug("action rejected")
		a.respond(ctx, reply{state: *a.entry.load(), err: err})
		return
	}

	state := a.session.Snapshot()
	a.entry.store(state)

	storeCtx, cancel := context.WithTimeout(context.Background(), a.reg.askTimeout)
	defer cancel()
	if serr := a.reg.store.Save(storeCtx, state); serr != nil {
		a.log.WithError(serr).Error("saving snapshot failed")
	}
	a.reg.pub.Publish(state)

	if a.session.Active() {
		a.armDeadline(ctx)
	} else {
		a.finish(storeCtx, ctx)
	}
	a.respond(ctx, reply{state: state, err: err})
}

func (a *sessionActor) finish(storeCtx context.Context, ctx actor.Context) {
	state := *a.entry.load()
	a.log.WithField("winner", state.Winner).Info("session finished")
	if err := a.reg.results.RecordResult(storeCtx, state); err != nil {
		a.log.WithError(err).Error("recording result failed")
	}
	if err := a.reg.store.Delete(storeCtx, state.Id); err != nil {
		a.log.WithError(err).Error("deleting snapshot failed")
	}
	a.stopDeadline()
	a.reg.remove(state.Id)
	ctx.Stop(ctx.Self())
}

// armDeadline gives the current turn a fresh deadline.
func (a *sessionActor) armDeadline(ctx actor.Context) {
	a.stopDeadline()
	a.turnStart = a.reg.now()
	if a.reg.turnTimeout <= 0 || !a.session.Active() {
		return
	}
	a.gen++
	tick := &deadlineTick{gen: a.gen}
	self := ctx.Self()
	root := ctx.ActorSystem().Root
	a.deadline = time.AfterFunc(a.reg.turnTimeout, func() {
		root.Send(self, tick)
	})
}

// deadlinePassed fails while the current turn still has time left. Without a
// configured deadline a turn never expires.
func (a *sessionActor) deadlinePassed() error {
	if a.reg.turnTimeout <= 0 {
		return ErrDeadlineNotReached
	}
	if left := a.turnStart.Add(a.reg.turnTimeout).Sub(a.reg.now()); left > 0 {
		return fmt.Errorf("%w: %s left", ErrDeadlineNotReached, left.Round(time.Second))
	}
	return nil
}

func (a *sessionActor) stopDeadline() {
	if a.deadline == nil {
		return
	}
	a.deadline.Stop()
	a.deadline = nil
	a.gen++
}

func (a *sessionActor) respond(ctx actor.Context, r reply) {
	if ctx.Sender() != nil {
		ctx.Respond(&r)
	}
}
