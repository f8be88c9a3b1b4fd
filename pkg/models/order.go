package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      int64           `gorm:"not null;index" json:"utilisateurId"`
	CustomerName    string          `gorm:"type:varchar(100)" json:"utilisateurNom"`
	Items           LineItems       `gorm:"type:text;serializer:json" json:"produits"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	OrderedOn       string          `gorm:"type:varchar(10)" json:"dateCommande"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'en préparation'" json:"statut"`
	ShippingAddress string          `gorm:"type:varchar(255)" json:"adresseLivraison"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(30)" json:"moyenPaiement"`
}

func (Order) TableName() string {
	return "orders"
}

type LineItem struct {
	Name     string          `json:"nom" validate:"required"`
	Quantity int64           `json:"quantite" validate:"min=1"`
	Price    decimal.Decimal `json:"prix" validate:"gte=0"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(li.Quantity))
}

type LineItems []LineItem

func (items LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ParseFormValue parses "name:quantity:price" entries separated by ';'.
func (items *LineItems) ParseFormValue(text string) error {
	out := LineItems{}
	for _, entry := range strings.Split(text, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return fmt.Errorf("line item %q: want name:quantity:price", entry)
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return fmt.Errorf("line item %q: invalid quantity: %w", entry, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
		if err != nil {
			return fmt.Errorf("line item %q: invalid price: %w", entry, err)
		}
		out = append(out, LineItem{Name: strings.TrimSpace(parts[0]), Quantity: qty, Price: price})
	}
	*items = out
	return nil
}

// OrderForm drives both order creation and the status change.
type OrderForm struct {
	CustomerID      int64         `json:"utilisateurId" validate:"required"`
	CustomerName    string        `json:"utilisateurNom" validate:"required"`
	Items           LineItems     `json:"produits" validate:"dive"`
	Status          OrderStatus   `json:"statut" validate:"omitempty,enum"`
	ShippingAddress string        `json:"adresseLivraison"`
	PaymentMethod   PaymentMethod `json:"moyenPaiement" validate:"omitempty,enum"`
}

var Orders = &admin.Schema[Order, OrderForm]{
	Resource: "orders",
	Singular: "order",
	Noun:     admin.Noun{Singular: "commande", Plural: "commandes", Feminine: true},
	ID:       func(o Order) int64 { return o.ID },
	WithID:   func(o Order, id int64) Order { o.ID = id; return o },
	Search: func(o Order) []string {
		return []string{o.CustomerName, strconv.FormatInt(o.ID, 10)}
	},
	Blank: func() OrderForm { return OrderForm{Status: OrderPreparing} },
	Fill: func(o Order) OrderForm {
		return OrderForm{
			CustomerID:      o.CustomerID,
			CustomerName:    o.CustomerName,
			Items:           slices.Clone(o.Items),
			Status:          o.Status,
			ShippingAddress: o.ShippingAddress,
			PaymentMethod:   o.PaymentMethod,
		}
	},
	Merge: func(o Order, f OrderForm) (Order, error) {
		o.CustomerID = f.CustomerID
		o.CustomerName = f.CustomerName
		o.Items = slices.Clone(f.Items)
		o.Total = o.Items.Total()
		if f.Status != "" {
			o.Status = f.Status
		}
		o.ShippingAddress = f.ShippingAddress
		o.PaymentMethod = f.PaymentMethod
		return o, nil
	},
	Prepare: func(o Order) Order {
		if o.OrderedOn == "" {
			o.OrderedOn = today()
		}
		if o.Status == "" {
			o.Status = OrderPreparing
		}
		return o
	},
}
