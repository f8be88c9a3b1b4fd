package actors

import "github.com/example/shopadmin/pkg/admin"

// Requests understood by CollectionActor. Each is answered with a *View or a
// *Failure once its outcome has been applied.
type (
	Load        struct{}
	SetSearch   struct{ Term string }
	BeginCreate struct{}
	BeginEdit   struct{ ID int64 }
	// EditForm must carry the actor's form type.
	EditForm[F any] struct{ Edit func(*F) }
	DecodeForm      struct{ Values map[string]string }
	Cancel          struct{}
	Submit          struct{}
	Delete          struct{ ID int64 }
	GetView         struct{}
)

// View is a snapshot of the controller after a request.
type View[T any, F any] struct {
	// Records holds the records matching Search, in collection order.
	Records []T
	Total   int
	Search  string
	Dialog  admin.Dialog[F]
	// Record is the record returned by a successful Submit.
	Record *T
}

type Failure struct {
	Err error
}

// Notify carries one notification to the NotificationActor.
type Notify struct {
	Notification admin.Notification
}
