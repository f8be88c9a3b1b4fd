package models

import "github.com/example/shopadmin/pkg/admin"

type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"nom"`
	Description string `gorm:"type:text" json:"description"`
	ParentID    *int64 `gorm:"index" json:"parentId,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type CategoryForm struct {
	Name        string `json:"nom" validate:"required"`
	Description string `json:"description" validate:"required"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

var Categories = &admin.Schema[Category, CategoryForm]{
	Resource: "categories",
	Singular: "category",
	Noun:     admin.Noun{Singular: "catégorie", Plural: "catégories", Feminine: true},
	ID:       func(c Category) int64 { return c.ID },
	WithID:   func(c Category, id int64) Category { c.ID = id; return c },
	Search:   func(c Category) []string { return []string{c.Name} },
	Blank:    func() CategoryForm { return CategoryForm{} },
	Fill: func(c Category) CategoryForm {
		return CategoryForm{Name: c.Name, Description: c.Description, ParentID: c.ParentID}
	},
	Merge: func(c Category, f CategoryForm) (Category, error) {
		c.Name = f.Name
		c.Description = f.Description
		c.ParentID = f.ParentID
		return c, nil
	},
}

// CategoryName resolves a category id for display. A nil id means every
// category; an unknown id resolves to "".
func CategoryName(categories []Category, id *int64) string {
	if id == nil {
		return AllCategoriesLabel
	}
	for _, c := range categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return ""
}
