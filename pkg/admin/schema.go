package admin

import (
	"strings"

	"golang.org/x/text/cases"
)

// Schema binds a record type T and its dialog form F to the generic
// controller and to the REST collection endpoints.
type Schema[T any, F any] struct {
	// Resource is the collection path segment, e.g. "categories".
	Resource string
	// ListKey names the array field when a list response is an object.
	// Empty means Resource.
	ListKey string
	// Singular is the human name of one record, e.g. "category".
	Singular string
	// Noun names records in notifications. Empty falls back to Singular
	// and Resource.
	Noun Noun

	ID     func(T) int64
	WithID func(T, int64) T
	// Search returns the designated text fields matched by the search term.
	Search func(T) []string

	// Blank is the form shown by Begin Create.
	Blank func() F
	// Fill pre-populates the form from a record for Begin Edit.
	Fill func(T) F
	// Merge overlays the form values on an existing record.
	Merge func(base T, form F) (T, error)
	// Prepare applies creation defaults to a freshly merged record. Optional.
	Prepare func(T) T
}

func (s *Schema[T, F]) Key() string {
	if s.ListKey != "" {
		return s.ListKey
	}
	return s.Resource
}

// Matches reports whether any search field of rec contains term,
// case-insensitively. The empty term matches everything.
func (s *Schema[T, F]) Matches(rec T, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, field := range s.Search(rec) {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// Build turns a create form into a new record without an identifier.
func (s *Schema[T, F]) Build(form F) (T, error) {
	var zero T
	rec, err := s.Merge(zero, form)
	if err != nil {
		return zero, err
	}
	if s.Prepare != nil {
		rec = s.Prepare(rec)
	}
	return rec, nil
}
