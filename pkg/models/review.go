package models

import "github.com/example/shopadmin/pkg/admin"

type Review struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64  `gorm:"not null;index" json:"produitId"`
	ProductName  string `gorm:"type:varchar(150)" json:"produitNom"`
	CustomerID   int64  `gorm:"not null;index" json:"utilisateurId"`
	CustomerName string `gorm:"type:varchar(100)" json:"utilisateurNom"`
	Rating       int    `json:"note"`
	Comment      string `gorm:"type:text" json:"commentaire"`
	Date         string `gorm:"type:varchar(10)" json:"date"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewForm struct {
	ProductID    int64  `json:"produitId" validate:"required"`
	ProductName  string `json:"produitNom" validate:"required"`
	CustomerID   int64  `json:"utilisateurId" validate:"required"`
	CustomerName string `json:"utilisateurNom" validate:"required"`
	Rating       int    `json:"note" validate:"min=1,max=5"`
	Comment      string `json:"commentaire"`
}

var Reviews = &admin.Schema[Review, ReviewForm]{
	Resource: "reviews",
	Singular: "review",
	Noun:     admin.Noun{Singular: "avis", Plural: "avis"},
	ID:       func(r Review) int64 { return r.ID },
	WithID:   func(r Review, id int64) Review { r.ID = id; return r },
	Search:   func(r Review) []string { return []string{r.ProductName, r.CustomerName} },
	Blank:    func() ReviewForm { return ReviewForm{Rating: 5} },
	Fill: func(r Review) ReviewForm {
		return ReviewForm{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			Rating:       r.Rating,
			Comment:      r.Comment,
		}
	},
	Merge: func(r Review, f ReviewForm) (Review, error) {
		r.ProductID = f.ProductID
		r.ProductName = f.ProductName
		r.CustomerID = f.CustomerID
		r.CustomerName = f.CustomerName
		r.Rating = f.Rating
		r.Comment = f.Comment
		return r, nil
	},
	Prepare: func(r Review) Review {
		if r.Date == "" {
			r.Date = today()
		}
		return r
	},
}
