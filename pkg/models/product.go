package models

import (
	"slices"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(150);not null" json:"nom"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"prix"`
	Sizes       []string        `gorm:"type:text;serializer:json" json:"tailleDisponible"`
	Colors      []string        `gorm:"type:text;serializer:json" json:"couleurDisponible"`
	Stock       int64           `json:"quantiteStock"`
	Images      []string        `gorm:"type:text;serializer:json" json:"images"`
	Category    string          `gorm:"type:varchar(100);index" json:"categorie"`
	AddedOn     string          `gorm:"type:varchar(10)" json:"dateAjout"`
}

func (Product) TableName() string {
	return "products"
}

// ProductForm takes sizes, colours and images as comma separated text. Price
// and stock are pointers so that a missing value is told apart from 0.
type ProductForm struct {
	Name        string           `json:"nom" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"prix" validate:"required,gte=0"`
	Sizes       []string         `json:"tailleDisponible"`
	Colors      []string         `json:"couleurDisponible"`
	Stock       *int64           `json:"quantiteStock" validate:"required,min=0"`
	Category    string           `json:"categorie" validate:"required"`
	Images      []string         `json:"images"`
}

var Products = &admin.Schema[Product, ProductForm]{
	Resource: "products",
	Singular: "product",
	Noun:     admin.Noun{Singular: "produit", Plural: "produits"},
	ID:       func(p Product) int64 { return p.ID },
	WithID:   func(p Product, id int64) Product { p.ID = id; return p },
	Search:   func(p Product) []string { return []string{p.Name, p.Category} },
	Blank:    func() ProductForm { return ProductForm{} },
	Fill: func(p Product) ProductForm {
		return ProductForm{
			Name:        p.Name,
			Description: p.Description,
			Price:       ptr(p.Price),
			Sizes:       slices.Clone(p.Sizes),
			Colors:      slices.Clone(p.Colors),
			Stock:       ptr(p.Stock),
			Category:    p.Category,
			Images:      slices.Clone(p.Images),
		}
	},
	Merge: func(p Product, f ProductForm) (Product, error) {
		p.Name = f.Name
		p.Description = f.Description
		p.Price = deref(f.Price)
		p.Sizes = trimmed(f.Sizes)
		p.Colors = trimmed(f.Colors)
		p.Stock = deref(f.Stock)
		p.Category = f.Category
		p.Images = trimmed(f.Images)
		if len(p.Images) == 0 {
			p.Images = []string{PlaceholderImage}
		}
		return p, nil
	},
	Prepare: func(p Product) Product {
		if p.AddedOn == "" {
			p.AddedOn = today()
		}
		return p
	},
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, admin.SplitList(v)...)
	}
	return out
}
