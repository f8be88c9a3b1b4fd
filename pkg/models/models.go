// Package models holds the dashboard's entity records, the dialog form of
// each entity and the schema binding the two to admin.Controller.
package models

import (
	"time"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
)

const (
	DateLayout         = "2006-01-02"
	PlaceholderImage   = "/placeholder.svg?height=100&width=100"
	PlaceholderAvatar  = "/placeholder-user.jpg"
	AllCategoriesLabel = "Toutes catégories"
)

// Now is the clock used for creation dates.
var Now = time.Now

func today() string {
	return Now().Format(DateLayout)
}

func init() {
	// amounts travel as JSON numbers, as the pages expect
	decimal.MarshalJSONWithoutQuotes = true
}

func ptr[T any](v T) *T { return &v }

// deref reads a validated required field; nil yields the zero value.
func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// All lists every migrated model, for AutoMigrate.
func All() []any {
	return []any{&Category{}, &User{}, &Product{}, &Order{}, &Payment{}, &Promotion{}, &Review{}}
}

// LookupName resolves id against records for display, "" when absent.
func LookupName[T, F any](s *admin.Schema[T, F], records []T, id int64, name func(T) string) string {
	for _, rec := range records {
		if s.ID(rec) == id {
			return name(rec)
		}
	}
	return ""
}
