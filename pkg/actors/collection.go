// Package actors hosts entity list controllers on protoactor. A controller
// is confined to its actor; store requests run on their own goroutines and
// report back to the actor as messages.
package actors

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/shopadmin/pkg/admin"
	"go.uber.org/zap"
)

// ConfirmWindow is added to the request timeout of a Delete, which may wait
// for the operator.
const ConfirmWindow = 5 * time.Minute

type loaded[T any] struct {
	records []T
	err     error
	sender  *actor.PID
}

type submitted[T any, F any] struct {
	sub    *admin.Submission[F]
	rec    T
	err    error
	sender *actor.PID
}

type deleted struct {
	id     int64
	err    error
	sender *actor.PID
}

// CollectionActor owns one admin.Controller.
type CollectionActor[T any, F any] struct {
	ctrl    *admin.Controller[T, F]
	timeout time.Duration
	logger  *zap.Logger
}

func (a *CollectionActor[T, F]) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("Collection actor started", zap.Bool("remote", a.ctrl.Remote()))

	case *actor.Stopped:
		a.logger.Info("Collection actor stopped")

	case *Load:
		if !a.ctrl.Remote() {
			a.reply(ctx, ctx.Sender(), nil, a.ctrl.Load(context.Background()))
			return
		}
		a.async(ctx, func(c context.Context, sender *actor.PID) any {
			records, err := a.ctrl.Fetch(c)
			return &loaded[T]{records: records, err: err, sender: sender}
		})

	case *loaded[T]:
		err := a.ctrl.CompleteLoad(msg.records, msg.err)
		a.logResult("load", 0, err)
		a.reply(ctx, msg.sender, nil, err)

	case *SetSearch:
		a.ctrl.SetSearch(msg.Term)
		a.reply(ctx, ctx.Sender(), nil, nil)

	case *BeginCreate:
		a.ctrl.BeginCreate()
		a.reply(ctx, ctx.Sender(), nil, nil)

	case *BeginEdit:
		a.reply(ctx, ctx.Sender(), nil, a.ctrl.BeginEdit(msg.ID))

	case *EditForm[F]:
		a.reply(ctx, ctx.Sender(), nil, a.ctrl.EditForm(msg.Edit))

	case *DecodeForm:
		a.reply(ctx, ctx.Sender(), nil, a.ctrl.DecodeForm(msg.Values))

	case *Cancel:
		a.ctrl.Cancel()
		a.reply(ctx, ctx.Sender(), nil, nil)

	case *Submit:
		sub, err := a.ctrl.PrepareSubmit()
		if err != nil {
			a.reply(ctx, ctx.Sender(), nil, err)
			return
		}
		if !a.ctrl.Remote() {
			rec, err := a.ctrl.CompleteSubmit(sub, *new(T), nil)
			a.reply(ctx, ctx.Sender(), &rec, err)
			return
		}
		a.async(ctx, func(c context.Context, sender *actor.PID) any {
			rec, err := a.ctrl.Send(c, sub)
			return &submitted[T, F]{sub: sub, rec: rec, err: err, sender: sender}
		})

	case *submitted[T, F]:
		rec, err := a.ctrl.CompleteSubmit(msg.sub, msg.rec, msg.err)
		a.logResult("submit", msg.sub.ID, err)
		a.reply(ctx, msg.sender, &rec, err)

	case *Delete:
		if err := a.ctrl.PrepareDelete(context.Background(), msg.ID); err != nil {
			a.reply(ctx, ctx.Sender(), nil, err)
			return
		}
		if !a.ctrl.Remote() {
			a.reply(ctx, ctx.Sender(), nil, a.ctrl.CompleteDelete(msg.ID, nil))
			return
		}
		id := msg.ID
		a.async(ctx, func(c context.Context, sender *actor.PID) any {
			return &deleted{id: id, err: a.ctrl.SendDelete(c, id), sender: sender}
		})

	case *deleted:
		err := a.ctrl.CompleteDelete(msg.id, msg.err)
		a.logResult("delete", msg.id, err)
		a.reply(ctx, msg.sender, nil, err)

	case *GetView:
		a.reply(ctx, ctx.Sender(), nil, nil)
	}
}

// async runs fn off the actor and delivers its result to the actor's
// mailbox. Results are applied in arrival order.
func (a *CollectionActor[T, F]) async(ctx actor.Context, fn func(context.Context, *actor.PID) any) {
	self, sender, root := ctx.Self(), ctx.Sender(), ctx.ActorSystem().Root
	go func() {
		c, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		root.Send(self, fn(c, sender))
	}()
}

func (a *CollectionActor[T, F]) reply(ctx actor.Context, to *actor.PID, rec *T, err error) {
	if to == nil {
		return
	}
	if err != nil {
		ctx.Send(to, &Failure{Err: err})
		return
	}
	records := a.ctrl.Filter()
	ctx.Send(to, &View[T, F]{
		Records: records,
		Total:   a.ctrl.Len(),
		Search:  a.ctrl.SearchTerm(),
		Dialog:  a.ctrl.Dialog(),
		Record:  rec,
	})
}

func (a *CollectionActor[T, F]) logResult(op string, id int64, err error) {
	if err != nil {
		a.logger.Warn("Store request failed", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
		return
	}
	a.logger.Debug("Store request applied", zap.String("op", op), zap.Int64("id", id))
}

// Collection is the requesting side of a spawned CollectionActor.
type Collection[T any, F any] struct {
	root    *actor.RootContext
	pid     *actor.PID
	timeout time.Duration
}

// Spawn starts an actor owning ctrl. timeout bounds each store request; the
// callers wait a little longer for the reply.
func Spawn[T any, F any](system *actor.ActorSystem, ctrl *admin.Controller[T, F], timeout time.Duration, logger *zap.Logger) *Collection[T, F] {
	props := actor.PropsFromProducer(func() actor.Actor {
		return &CollectionActor[T, F]{
			ctrl:    ctrl,
			timeout: timeout,
			logger:  logger.Named("collection-actor").With(zap.String("resource", ctrl.Schema().Resource)),
		}
	})
	return &Collection[T, F]{
		root:    system.Root,
		pid:     system.Root.Spawn(props),
		timeout: timeout + time.Second,
	}
}

// Request sends msg and waits for the actor's answer.
func (c *Collection[T, F]) Request(msg any) (*View[T, F], error) {
	return c.request(msg, c.timeout)
}

func (c *Collection[T, F]) request(msg any, timeout time.Duration) (*View[T, F], error) {
	res, err := c.root.RequestFuture(c.pid, msg, timeout).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get reply for %T: %w", msg, err)
	}
	switch r := res.(type) {
	case *View[T, F]:
		return r, nil
	case *Failure:
		return nil, r.Err
	default:
		return nil, fmt.Errorf("unexpected reply %T", res)
	}
}

func (c *Collection[T, F]) Load() (*View[T, F], error) { return c.Request(&Load{}) }

func (c *Collection[T, F]) SetSearch(term string) (*View[T, F], error) {
	return c.Request(&SetSearch{Term: term})
}

func (c *Collection[T, F]) BeginCreate() (*View[T, F], error) { return c.Request(&BeginCreate{}) }

func (c *Collection[T, F]) BeginEdit(id int64) (*View[T, F], error) {
	return c.Request(&BeginEdit{ID: id})
}

func (c *Collection[T, F]) EditForm(edit func(*F)) (*View[T, F], error) {
	return c.Request(&EditForm[F]{Edit: edit})
}

func (c *Collection[T, F]) DecodeForm(values map[string]string) (*View[T, F], error) {
	return c.Request(&DecodeForm{Values: values})
}

func (c *Collection[T, F]) Cancel() (*View[T, F], error) { return c.Request(&Cancel{}) }

func (c *Collection[T, F]) Submit() (*View[T, F], error) { return c.Request(&Submit{}) }

func (c *Collection[T, F]) Delete(id int64) (*View[T, F], error) {
	return c.request(&Delete{ID: id}, c.timeout+ConfirmWindow)
}

func (c *Collection[T, F]) View() (*View[T, F], error) { return c.Request(&GetView{}) }

// Stop waits for the actor to drain its mailbox and stop.
func (c *Collection[T, F]) Stop() error {
	return c.root.PoisonFuture(c.pid).Wait()
}
