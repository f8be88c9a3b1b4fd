package admin

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDialogClosed = errors.New("dialog is closed")
	ErrInvalidForm  = errors.New("invalid form")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Op is one of the four remote operations a controller performs.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OperationError is a failed remote operation. The collection is left as it
// was before the operation started.
type OperationError struct {
	Op       Op
	Resource string
	ID       int64
	Err      error
}

func (e *OperationError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("failed to %s %s/%d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
