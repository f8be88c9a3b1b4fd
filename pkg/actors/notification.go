package actors

import (
	"fmt"
	"io"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/shopadmin/pkg/admin"
	"go.uber.org/zap"
)

// NotificationActor logs notifications and prints them for the operator.
type NotificationActor struct {
	out    io.Writer
	logger *zap.Logger
}

func (a *NotificationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Notify:
		n := msg.Notification
		fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
		if n.Variant == admin.VariantDestructive {
			a.logger.Warn("Notification", fields...)
		} else {
			a.logger.Info("Notification", fields...)
		}
		if a.out != nil {
			fmt.Fprintln(a.out, n.String())
		}

	case *actor.Started:
		a.logger.Debug("Notification actor started")
	}
}

// Notifier forwards controller notifications to a NotificationActor.
type Notifier struct {
	root *actor.RootContext
	pid  *actor.PID
}

// SpawnNotifier starts a NotificationActor writing to out, which may be nil.
func SpawnNotifier(system *actor.ActorSystem, out io.Writer, logger *zap.Logger) *Notifier {
	props := actor.PropsFromProducer(func() actor.Actor {
		return &NotificationActor{out: out, logger: logger.Named("notification-actor")}
	})
	return &Notifier{root: system.Root, pid: system.Root.Spawn(props)}
}

func (n *Notifier) Notify(notification admin.Notification) {
	n.root.Send(n.pid, &Notify{Notification: notification})
}

// Flush waits until every notification sent so far has been handled, then
// stops the actor.
func (n *Notifier) Flush() error {
	return n.root.PoisonFuture(n.pid).Wait()
}
