package models

import (
	"time"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
)

// Promotion targets one product, one category, or the whole catalogue when
// both ids are nil.
type Promotion struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"codePromo"`
	Type         PromotionType   `gorm:"type:varchar(10)" json:"type"`
	Value        decimal.Decimal `gorm:"type:decimal(10,2)" json:"valeur"`
	ProductID    *int64          `json:"produitId"`
	ProductName  string          `gorm:"type:varchar(150)" json:"produitName,omitempty"`
	CategoryID   *int64          `json:"categorieId"`
	CategoryName string          `gorm:"type:varchar(100)" json:"categorieName,omitempty"`
	StartsOn     string          `gorm:"type:varchar(10)" json:"dateDebut"`
	EndsOn       string          `gorm:"type:varchar(10)" json:"dateFin"`
	MaxUses      int64           `json:"nombreUtilisationsMax"`
	Uses         int64           `json:"utilisationsActuelles"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// Active reports whether now falls between the start and end dates, both
// read as midnight UTC. A promotion with unparsable dates is never active.
func (p Promotion) Active(now time.Time) bool {
	start, err := time.ParseInLocation(DateLayout, p.StartsOn, time.UTC)
	if err != nil {
		return false
	}
	end, err := time.ParseInLocation(DateLayout, p.EndsOn, time.UTC)
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

type PromotionForm struct {
	Code     string           `json:"codePromo" validate:"required"`
	Type     PromotionType    `json:"type" validate:"required,enum"`
	Value    *decimal.Decimal `json:"valeur" validate:"required,gte=0"`
	StartsOn string           `json:"dateDebut" validate:"required,datetime=2006-01-02"`
	EndsOn   string           `json:"dateFin" validate:"required,datetime=2006-01-02"`
	MaxUses  *int64           `json:"nombreUtilisationsMax" validate:"required,min=0"`
}

var Promotions = &admin.Schema[Promotion, PromotionForm]{
	Resource: "promotions",
	Singular: "promotion",
	Noun:     admin.Noun{Singular: "promotion", Plural: "promotions", Feminine: true},
	ID:       func(p Promotion) int64 { return p.ID },
	WithID:   func(p Promotion, id int64) Promotion { p.ID = id; return p },
	Search:   func(p Promotion) []string { return []string{p.Code} },
	Blank:    func() PromotionForm { return PromotionForm{Type: PromotionPercent} },
	Fill: func(p Promotion) PromotionForm {
		return PromotionForm{
			Code:     p.Code,
			Type:     p.Type,
			Value:    ptr(p.Value),
			StartsOn: p.StartsOn,
			EndsOn:   p.EndsOn,
			MaxUses:  ptr(p.MaxUses),
		}
	},
	Merge: func(p Promotion, f PromotionForm) (Promotion, error) {
		p.Code = f.Code
		p.Type = f.Type
		p.Value = deref(f.Value)
		p.StartsOn = f.StartsOn
		p.EndsOn = f.EndsOn
		p.MaxUses = deref(f.MaxUses)
		return p, nil
	},
	Prepare: func(p Promotion) Promotion {
		if p.ProductID == nil && p.CategoryID == nil && p.CategoryName == "" {
			p.CategoryName = AllCategoriesLabel
		}
		return p
	},
}

// ActivePromotions keeps the promotions running at now, in order.
func ActivePromotions(promotions []Promotion, now time.Time) []Promotion {
	out := []Promotion{}
	for _, p := range promotions {
		if p.Active(now) {
			out = append(out, p)
		}
	}
	return out
}
