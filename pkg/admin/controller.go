package admin

import (
	"context"
	"fmt"
	"slices"
)

// Store is the remote system of record for one entity collection.
type Store[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, id int64, form F) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the operator to confirm deleting rec.
type Confirmer[T any] func(ctx context.Context, rec T) bool

type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogEdit
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreate:
		return "open-for-create"
	case DialogEdit:
		return "open-for-edit"
	default:
		return "closed"
	}
}

// Dialog is the create/edit form state. TargetID is set only in DialogEdit.
type Dialog[F any] struct {
	Mode     DialogMode
	TargetID int64
	Form     F
}

// Submission is a closed dialog's pending request.
type Submission[F any] struct {
	Mode DialogMode
	ID   int64
	Form F
}

func (s *Submission[F]) op() Op {
	if s.Mode == DialogEdit {
		return OpUpdate
	}
	return OpCreate
}

// Controller is the Entity List Controller: the visible, filtered, editable
// view of one collection. It is owned by a single goroutine and is not safe
// for concurrent use.
type Controller[T any, F any] struct {
	schema   *Schema[T, F]
	store    Store[T, F]
	seed     []T
	notifier Notifier
	confirm  Confirmer[T]

	records []T
	search  string
	dialog  Dialog[F]
}

type Option[T any, F any] func(*Controller[T, F])

// WithStore backs the controller by a remote collection store.
func WithStore[T any, F any](store Store[T, F]) Option[T, F] {
	return func(c *Controller[T, F]) { c.store = store }
}

// WithSeed sets the fixed list loaded when no store is configured.
func WithSeed[T any, F any](seed []T) Option[T, F] {
	return func(c *Controller[T, F]) { c.seed = slices.Clone(seed) }
}

func WithNotifier[T any, F any](n Notifier) Option[T, F] {
	return func(c *Controller[T, F]) { c.notifier = n }
}

// WithConfirmer sets the confirmation step required before a remote delete.
func WithConfirmer[T any, F any](confirm Confirmer[T]) Option[T, F] {
	return func(c *Controller[T, F]) { c.confirm = confirm }
}

func New[T any, F any](schema *Schema[T, F], opts ...Option[T, F]) *Controller[T, F] {
	c := &Controller[T, F]{
		schema:   schema,
		notifier: Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller[T, F]) Schema() *Schema[T, F] { return c.schema }

// Remote reports whether operations go to a collection store.
func (c *Controller[T, F]) Remote() bool { return c.store != nil }

// Records returns a copy of the full collection.
func (c *Controller[T, F]) Records() []T { return slices.Clone(c.records) }

func (c *Controller[T, F]) Len() int { return len(c.records) }

// Get returns the record with the given identifier.
func (c *Controller[T, F]) Get(id int64) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.records[i], true
	}
	var zero T
	return zero, false
}

func (c *Controller[T, F]) index(id int64) int {
	return slices.IndexFunc(c.records, func(rec T) bool { return c.schema.ID(rec) == id })
}

// Load populates the collection from the seed list or the store.
func (c *Controller[T, F]) Load(ctx context.Context) error {
	if c.store == nil {
		return c.CompleteLoad(c.seed, nil)
	}
	records, err := c.Fetch(ctx)
	return c.CompleteLoad(records, err)
}

// Fetch lists the store. It does not touch controller state.
func (c *Controller[T, F]) Fetch(ctx context.Context) ([]T, error) {
	return c.store.List(ctx)
}

// CompleteLoad installs a fetched collection. On failure the collection is
// left empty.
func (c *Controller[T, F]) CompleteLoad(records []T, err error) error {
	if err != nil {
		c.records = nil
		c.notifier.Notify(c.schema.failure(OpLoad))
		return &OperationError{Op: OpLoad, Resource: c.schema.Resource, Err: err}
	}
	c.records = slices.Clone(records)
	return nil
}

func (c *Controller[T, F]) SetSearch(term string) { c.search = term }

func (c *Controller[T, F]) SearchTerm() string { return c.search }

// Filter returns, in collection order, the records matching the search term.
func (c *Controller[T, F]) Filter() []T {
	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		if c.schema.Matches(rec, c.search) {
			out = append(out, rec)
		}
	}
	return out
}

func (c *Controller[T, F]) Dialog() Dialog[F] { return c.dialog }

func (c *Controller[T, F]) BeginCreate() {
	c.dialog = Dialog[F]{Mode: DialogCreate, Form: c.schema.Blank()}
}

func (c *Controller[T, F]) BeginEdit(id int64) error {
	rec, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", c.schema.Singular, id, ErrNotFound)
	}
	c.dialog = Dialog[F]{Mode: DialogEdit, TargetID: id, Form: c.schema.Fill(rec)}
	return nil
}

// EditForm mutates the open dialog's form.
func (c *Controller[T, F]) EditForm(edit func(*F)) error {
	if c.dialog.Mode == DialogClosed {
		return ErrDialogClosed
	}
	edit(&c.dialog.Form)
	return nil
}

// DecodeForm overlays text field values on the open dialog's form.
func (c *Controller[T, F]) DecodeForm(values map[string]string) error {
	if c.dialog.Mode == DialogClosed {
		return ErrDialogClosed
	}
	form := c.dialog.Form
	if err := DecodeForm(values, &form); err != nil {
		return err
	}
	c.dialog.Form = form
	return nil
}

func (c *Controller[T, F]) Cancel() {
	c.dialog = Dialog[F]{}
}

// Submit validates and dispatches the open dialog. It returns the created or
// updated record.
func (c *Controller[T, F]) Submit(ctx context.Context) (T, error) {
	sub, err := c.PrepareSubmit()
	if err != nil {
		var zero T
		return zero, err
	}
	if c.store == nil {
		return c.CompleteSubmit(sub, *new(T), nil)
	}
	rec, err := c.Send(ctx, sub)
	return c.CompleteSubmit(sub, rec, err)
}

// PrepareSubmit validates the open form and closes the dialog. An invalid
// form keeps the dialog open and nothing is dispatched.
func (c *Controller[T, F]) PrepareSubmit() (*Submission[F], error) {
	if c.dialog.Mode == DialogClosed {
		return nil, ErrDialogClosed
	}
	if err := ValidateForm(c.dialog.Form); err != nil {
		return nil, err
	}
	sub := &Submission[F]{Mode: c.dialog.Mode, ID: c.dialog.TargetID, Form: c.dialog.Form}
	c.dialog = Dialog[F]{}
	return sub, nil
}

// Send performs the store request for sub. It does not touch controller
// state.
func (c *Controller[T, F]) Send(ctx context.Context, sub *Submission[F]) (T, error) {
	if sub.Mode == DialogEdit {
		return c.store.Update(ctx, sub.ID, sub.Form)
	}
	return c.store.Create(ctx, sub.Form)
}

// CompleteSubmit applies a submission. Offline the form is merged locally;
// remote, rec and err are the store's response.
func (c *Controller[T, F]) CompleteSubmit(sub *Submission[F], rec T, err error) (T, error) {
	if c.store == nil {
		rec, err = c.applyLocal(sub)
	}
	if err != nil {
		var zero T
		c.notifier.Notify(c.schema.failure(sub.op()))
		return zero, &OperationError{Op: sub.op(), Resource: c.schema.Resource, ID: sub.ID, Err: err}
	}

	if sub.Mode == DialogEdit {
		if i := c.index(sub.ID); i >= 0 {
			c.records[i] = rec
		} else {
			// deleted while the update was in flight
			c.records = append(c.records, rec)
		}
	} else {
		c.records = append(c.records, rec)
	}
	c.notifier.Notify(c.schema.success(sub.op()))
	return rec, nil
}

func (c *Controller[T, F]) applyLocal(sub *Submission[F]) (T, error) {
	var zero T
	if sub.Mode == DialogEdit {
		base, ok := c.Get(sub.ID)
		if !ok {
			return zero, fmt.Errorf("%s %d: %w", c.schema.Singular, sub.ID, ErrNotFound)
		}
		rec, err := c.schema.Merge(base, sub.Form)
		if err != nil {
			return zero, err
		}
		return c.schema.WithID(rec, sub.ID), nil
	}

	rec, err := c.schema.Build(sub.Form)
	if err != nil {
		return zero, err
	}
	return c.schema.WithID(rec, c.nextID()), nil
}

// nextID is one greater than the current maximum, 1 for an empty collection.
func (c *Controller[T, F]) nextID() int64 {
	var maxID int64
	for _, rec := range c.records {
		maxID = max(maxID, c.schema.ID(rec))
	}
	return maxID + 1
}

// Delete removes the record. A remote delete must be confirmed first.
func (c *Controller[T, F]) Delete(ctx context.Context, id int64) error {
	if err := c.PrepareDelete(ctx, id); err != nil {
		return err
	}
	if c.store == nil {
		return c.CompleteDelete(id, nil)
	}
	return c.CompleteDelete(id, c.SendDelete(ctx, id))
}

// PrepareDelete checks the record exists and, when remote, runs the
// confirmation step.
func (c *Controller[T, F]) PrepareDelete(ctx context.Context, id int64) error {
	rec, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", c.schema.Singular, id, ErrNotFound)
	}
	if c.store != nil && c.confirm != nil && !c.confirm(ctx, rec) {
		return ErrNotConfirmed
	}
	return nil
}

// SendDelete performs the store request. It does not touch controller state.
func (c *Controller[T, F]) SendDelete(ctx context.Context, id int64) error {
	return c.store.Delete(ctx, id)
}

func (c *Controller[T, F]) CompleteDelete(id int64, err error) error {
	if err != nil {
		c.notifier.Notify(c.schema.failure(OpDelete))
		return &OperationError{Op: OpDelete, Resource: c.schema.Resource, ID: id, Err: err}
	}
	c.records = slices.DeleteFunc(c.records, func(rec T) bool { return c.schema.ID(rec) == id })
	c.notifier.Notify(c.schema.success(OpDelete))
	return nil
}
