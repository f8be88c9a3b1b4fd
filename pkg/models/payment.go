package models

import (
	"strconv"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID      int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64           `gorm:"not null;index" json:"commandeId"`
	Amount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"montant"`
	Method  PaymentMethod   `gorm:"type:varchar(30)" json:"moyen"`
	Status  PaymentStatus   `gorm:"type:varchar(20)" json:"statut"`
	PaidOn  string          `gorm:"type:varchar(10)" json:"datePaiement"`
}

func (Payment) TableName() string {
	return "payments"
}

type PaymentForm struct {
	OrderID int64            `json:"commandeId" validate:"required"`
	Amount  *decimal.Decimal `json:"montant" validate:"required,gte=0"`
	Method  PaymentMethod    `json:"moyen" validate:"required,enum"`
	Status  PaymentStatus    `json:"statut" validate:"required,enum"`
	PaidOn  string           `json:"datePaiement" validate:"omitempty,datetime=2006-01-02"`
}

var Payments = &admin.Schema[Payment, PaymentForm]{
	Resource: "payments",
	Singular: "payment",
	Noun:     admin.Noun{Singular: "paiement", Plural: "paiements"},
	ID:       func(p Payment) int64 { return p.ID },
	WithID:   func(p Payment, id int64) Payment { p.ID = id; return p },
	Search: func(p Payment) []string {
		return []string{strconv.FormatInt(p.OrderID, 10), string(p.Method)}
	},
	Blank: func() PaymentForm { return PaymentForm{Method: MethodCard, Status: PaymentPending} },
	Fill: func(p Payment) PaymentForm {
		return PaymentForm{OrderID: p.OrderID, Amount: ptr(p.Amount), Method: p.Method, Status: p.Status, PaidOn: p.PaidOn}
	},
	Merge: func(p Payment, f PaymentForm) (Payment, error) {
		p.OrderID = f.OrderID
		p.Amount = deref(f.Amount)
		p.Method = f.Method
		p.Status = f.Status
		if f.PaidOn != "" {
			p.PaidOn = f.PaidOn
		}
		return p, nil
	},
	Prepare: func(p Payment) Payment {
		if p.PaidOn == "" {
			p.PaidOn = today()
		}
		return p
	},
}

// PaymentSummary is the payments page header: amounts by outcome and the
// share of successful transactions.
type PaymentSummary struct {
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	TotalFailed decimal.Decimal `json:"totalFailed"`
	Paid        int             `json:"paid"`
	Failed      int             `json:"failed"`
	Count       int             `json:"count"`
	// SuccessRate is a percentage, 0 for an empty list.
	SuccessRate float64 `json:"successRate"`
}

func SummarizePayments(payments []Payment) PaymentSummary {
	s := PaymentSummary{TotalPaid: decimal.Zero, TotalFailed: decimal.Zero, Count: len(payments)}
	for _, p := range payments {
		switch p.Status {
		case PaymentPaid:
			s.Paid++
			s.TotalPaid = s.TotalPaid.Add(p.Amount)
		case PaymentFailed:
			s.Failed++
			s.TotalFailed = s.TotalFailed.Add(p.Amount)
		}
	}
	if s.Count > 0 {
		s.SuccessRate = float64(s.Paid) / float64(s.Count) * 100
	}
	return s
}
