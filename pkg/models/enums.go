package models

type OrderStatus string

const (
	OrderPreparing OrderStatus = "en préparation"
	OrderShipped   OrderStatus = "expédiée"
	OrderDelivered OrderStatus = "livrée"
	OrderCancelled OrderStatus = "annulée"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPreparing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "payé"
	PaymentFailed  PaymentStatus = "échoué"
	PaymentPending PaymentStatus = "en attente"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentFailed, PaymentPending:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCard   PaymentMethod = "Carte bancaire"
	MethodPayPal PaymentMethod = "PayPal"
	MethodCash   PaymentMethod = "Cash à la livraison"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodPayPal, MethodCash:
		return true
	}
	return false
}

type PromotionType string

const (
	PromotionPercent PromotionType = "%"
	PromotionAmount  PromotionType = "montant"
)

func (t PromotionType) Valid() bool {
	return t == PromotionPercent || t == PromotionAmount
}

type Role string

const (
	RoleClient    Role = "client"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

type Provider string

const (
	ProviderEmail    Provider = "email"
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderEmail, ProviderGoogle, ProviderFacebook:
		return true
	}
	return false
}
