package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationWording(t *testing.T) {
	review := &Schema[category, categoryForm]{Resource: "reviews", Singular: "review", Noun: Noun{Singular: "avis", Plural: "avis"}}
	product := &Schema[category, categoryForm]{Resource: "products", Singular: "product", Noun: Noun{Singular: "produit", Plural: "produits"}}

	tests := []struct {
		name string
		got  Notification
		want Notification
	}{
		{"feminine create", categorySchema.success(OpCreate), Notification{"Catégorie créée", "La catégorie a été créée avec succès.", VariantDefault}},
		{"masculine update", product.success(OpUpdate), Notification{"Produit modifié", "Le produit a été modifié avec succès.", VariantDefault}},
		{"elided delete", review.success(OpDelete), Notification{"Avis supprimé", "L'avis a été supprimé avec succès.", VariantDestructive}},
		{"load failure", review.failure(OpLoad), Notification{"Erreur", "Impossible de charger les avis.", VariantDestructive}},
		{"delete failure", product.failure(OpDelete), Notification{"Erreur", "Impossible de supprimer le produit.", VariantDestructive}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNounFallback(t *testing.T) {
	s := &Schema[category, categoryForm]{Resource: "widgets", Singular: "widget"}
	assert.Equal(t, "Impossible de charger les widgets.", s.failure(OpLoad).Description)
}

func TestMatchesFoldsCase(t *testing.T) {
	assert.True(t, categorySchema.Matches(category{Name: "ÉTÉ"}, "été"))
	assert.False(t, categorySchema.Matches(category{Name: "Homme"}, "femme"))
}
