package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, day string) {
	t.Helper()
	ts, err := time.Parse(DateLayout, day)
	require.NoError(t, err)
	prev := Now
	Now = func() time.Time { return ts }
	t.Cleanup(func() { Now = prev })
}

func TestProductJSONKeys(t *testing.T) {
	data, err := json.Marshal(SeedProducts()[0])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "T-shirt Oversize", got["nom"])
	assert.Equal(t, float64(45), got["prix"])
	assert.Equal(t, []any{"S", "M", "L", "XL"}, got["tailleDisponible"])
	assert.Equal(t, "2024-01-15", got["dateAjout"])
}

func TestProductCreateDefaults(t *testing.T) {
	fixedClock(t, "2025-05-01")

	var form ProductForm
	require.NoError(t, admin.DecodeForm(map[string]string{
		"nom":               "Pull",
		"description":       "Laine",
		"prix":              "60",
		"tailleDisponible":  "S, M",
		"couleurDisponible": "Vert",
		"quantiteStock":     "4",
		"categorie":         "Homme",
	}, &form))
	require.NoError(t, admin.ValidateForm(form))

	p, err := Products.Build(form)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M"}, p.Sizes)
	assert.Equal(t, []string{PlaceholderImage}, p.Images)
	assert.Equal(t, "2025-05-01", p.AddedOn)
	assert.Zero(t, p.ID)
}

func TestNumericFieldsRequired(t *testing.T) {
	product := map[string]string{
		"nom": "Casquette", "description": "Coton", "categorie": "Accessoires",
		"prix": "25", "quantiteStock": "0",
	}
	payment := map[string]string{
		"commandeId": "9", "montant": "0", "moyen": string(MethodCard), "statut": string(PaymentPending),
	}
	promotion := map[string]string{
		"codePromo": "FREE", "type": "%", "valeur": "10",
		"dateDebut": "2025-01-01", "dateFin": "2025-01-31", "nombreUtilisationsMax": "0",
	}

	tests := []struct {
		name   string
		values map[string]string
		decode func(map[string]string) error
		fields []string
	}{
		{"product", product, decodeValid(Products), []string{"prix", "quantiteStock"}},
		{"payment", payment, decodeValid(Payments), []string{"montant"}},
		{"promotion", promotion, decodeValid(Promotions), []string{"valeur", "nombreUtilisationsMax"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.decode(tt.values), "zero is a value")
			for _, field := range tt.fields {
				missing := without(tt.values, field)
				assert.ErrorIs(t, tt.decode(missing), admin.ErrInvalidForm, "%s missing", field)

				blank := without(tt.values, field)
				blank[field] = ""
				assert.ErrorIs(t, tt.decode(blank), admin.ErrInvalidForm, "%s blank", field)
			}
		})
	}
}

func decodeValid[T, F any](s *admin.Schema[T, F]) func(map[string]string) error {
	return func(values map[string]string) error {
		form := s.Blank()
		if err := admin.DecodeForm(values, &form); err != nil {
			return err
		}
		return admin.ValidateForm(form)
	}
}

func without(values map[string]string, key string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func TestOrderLineItems(t *testing.T) {
	form := Orders.Blank()
	require.NoError(t, admin.DecodeForm(map[string]string{
		"utilisateurId":  "1",
		"utilisateurNom": "Ahmed Ben Ali",
		"produits":       "T-shirt Oversize:2:45; Jean Slim:1:65",
	}, &form))
	require.NoError(t, admin.ValidateForm(form))

	o, err := Orders.Build(form)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.True(t, decimal.NewFromInt(90).Equal(o.Items[0].Subtotal()))
	assert.True(t, decimal.NewFromInt(155).Equal(o.Total))
	assert.Equal(t, OrderPreparing, o.Status)

	var bad OrderForm
	assert.ErrorIs(t, admin.DecodeForm(map[string]string{"produits": "Jean:x:65"}, &bad), admin.ErrInvalidForm)
}

func TestOrderStatusChange(t *testing.T) {
	order := SeedOrders()[0]
	form := Orders.Fill(order)
	form.Status = OrderShipped

	updated, err := Orders.Merge(order, form)
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, updated.Status)
	assert.True(t, order.Total.Equal(updated.Total))

	form.Status = "perdue"
	assert.ErrorIs(t, admin.ValidateForm(form), admin.ErrInvalidForm)
}

func TestUserPassword(t *testing.T) {
	form := Users.Blank()
	form.Name = "Sami"
	form.Email = "sami@example.tn"
	form.Phone = "+216 55 000 000"
	form.Address = "Bizerte"
	form.Password = "s3cret"
	require.NoError(t, admin.ValidateForm(form))

	u, err := Users.Build(form)
	require.NoError(t, err)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("guess"))

	again, err := Users.Merge(u, Users.Fill(u))
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, again.PasswordHash, "no password keeps the hash")

	same := Users.Fill(u)
	same.Password = "s3cret"
	again, err = Users.Merge(u, same)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, again.PasswordHash, "the current password is not rehashed")

	changed := Users.Fill(u)
	changed.Password = "n3w"
	again, err = Users.Merge(u, changed)
	require.NoError(t, err)
	assert.NotEqual(t, u.PasswordHash, again.PasswordHash)
	assert.True(t, again.CheckPassword("n3w"))
	assert.Equal(t, []Role{RoleClient}, u.Roles)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cret")
	assert.NotContains(t, string(data), u.PasswordHash)

	// an empty password keeps the stored hash and stays out of the body
	edit := Users.Fill(u)
	kept, err := Users.Merge(u, edit)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, kept.PasswordHash)
	body, err := json.Marshal(edit)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")

	edit.Roles = []Role{"root"}
	assert.ErrorIs(t, admin.ValidateForm(edit), admin.ErrInvalidForm)
}

func TestPromotionActive(t *testing.T) {
	promo := SeedPromotions()[0]

	assert.True(t, promo.Active(time.Date(2024, 11, 27, 15, 0, 0, 0, time.UTC)))
	assert.True(t, promo.Active(time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, promo.Active(time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, promo.Active(time.Date(2024, 11, 30, 12, 0, 0, 0, time.UTC)))
	assert.False(t, promo.Active(time.Date(2024, 11, 24, 23, 59, 0, 0, time.UTC)))

	active := ActivePromotions(SeedPromotions(), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, active, 2)
	assert.Equal(t, "WELCOME10", active[0].Code)
	assert.Equal(t, "SUMMER20", active[1].Code)
}

func TestPromotionCreateDefaults(t *testing.T) {
	form := PromotionForm{
		Code:     "SPRING5",
		Type:     PromotionAmount,
		Value:    ptr(decimal.NewFromInt(5)),
		StartsOn: "2025-03-01",
		EndsOn:   "2025-03-31",
		MaxUses:  ptr(int64(10)),
	}
	require.NoError(t, admin.ValidateForm(form))

	p, err := Promotions.Build(form)
	require.NoError(t, err)
	assert.Equal(t, AllCategoriesLabel, p.CategoryName)
	assert.Zero(t, p.Uses)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"produitId":null`)
	assert.Contains(t, string(data), `"categorieId":null`)

	form.EndsOn = "31/03/2025"
	assert.ErrorIs(t, admin.ValidateForm(form), admin.ErrInvalidForm)
}

func TestSummarizePayments(t *testing.T) {
	s := SummarizePayments(SeedPayments())
	assert.True(t, decimal.NewFromInt(350).Equal(s.TotalPaid))
	assert.True(t, decimal.RequireFromString("89.5").Equal(s.TotalFailed))
	assert.Equal(t, 3, s.Paid)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 75.0, s.SuccessRate, 1e-9)

	assert.Zero(t, SummarizePayments(nil).SuccessRate)
}

func TestSearchFields(t *testing.T) {
	payments := SeedPayments()
	assert.True(t, Payments.Matches(payments[1], "paypal"))
	assert.True(t, Payments.Matches(payments[3], "4"))
	assert.False(t, Payments.Matches(payments[0], "paypal"))

	orders := SeedOrders()
	assert.True(t, Orders.Matches(orders[2], "gharbi"))
	assert.True(t, Orders.Matches(orders[2], "3"))

	reviews := SeedReviews()
	assert.True(t, Reviews.Matches(reviews[1], "robe"))
	assert.True(t, Reviews.Matches(reviews[1], "fatma"))
}

func TestReviewRating(t *testing.T) {
	fixedClock(t, "2025-02-02")
	form := ReviewForm{ProductID: 1, ProductName: "T-shirt", CustomerID: 2, CustomerName: "Fatma", Rating: 6}
	assert.ErrorIs(t, admin.ValidateForm(form), admin.ErrInvalidForm)

	form.Rating = 4
	require.NoError(t, admin.ValidateForm(form))
	r, err := Reviews.Build(form)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-02", r.Date)
}

func TestNames(t *testing.T) {
	categories := SeedCategories()
	assert.Equal(t, AllCategoriesLabel, CategoryName(categories, nil))
	assert.Equal(t, "Femme", CategoryName(categories, ref(2)))
	assert.Equal(t, "", CategoryName(categories, ref(42)))

	name := func(p Product) string { return p.Name }
	assert.Equal(t, "Robe d'été", LookupName(Products, SeedProducts(), 2, name))
	assert.Equal(t, "", LookupName(Products, SeedProducts(), 9, name))
}

func TestSeedsAreFresh(t *testing.T) {
	a := SeedCategories()
	a[0].Name = "changed"
	assert.Equal(t, "Homme", SeedCategories()[0].Name)

	for _, o := range SeedOrders() {
		assert.True(t, o.Items.Total().Equal(o.Total))
	}
}
