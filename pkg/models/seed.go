package models

import "github.com/shopspring/decimal"

// Sample records served offline and loaded by `gateway --seed`. Every call
// returns fresh slices.

func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Homme", Description: "Vêtements et accessoires pour hommes"},
		{ID: 2, Name: "Femme", Description: "Vêtements et accessoires pour femmes"},
		{ID: 3, Name: "Enfants", Description: "Vêtements pour enfants de tous âges"},
		{ID: 4, Name: "Accessoires", Description: "Sacs, bijoux et autres accessoires"},
		{ID: 5, Name: "Chaussures", Description: "Chaussures pour toute la famille"},
	}
}

func SeedUsers() []User {
	return []User{
		{
			ID: 1, Name: "Ahmed Ben Ali", Email: "ahmed.benali@example.tn", Phone: "+216 20 123 456",
			Address: "123 Rue de la Liberté, Tunis", Roles: []Role{RoleClient},
			Provider: ProviderEmail, Avatar: PlaceholderAvatar,
		},
		{
			ID: 2, Name: "Fatma Trabelsi", Email: "fatma.trabelsi@example.tn", Phone: "+216 22 654 321",
			Address: "456 Avenue Habib Bourguiba, Sfax", Roles: []Role{RoleClient},
			Provider: ProviderGoogle, ProviderID: "google-104233", Avatar: PlaceholderAvatar,
		},
		{
			ID: 3, Name: "Mohamed Gharbi", Email: "mohamed.gharbi@example.tn", Phone: "+216 98 765 432",
			Address: "789 Rue des Oliviers, Sousse", Roles: []Role{RoleAdmin, RoleClient},
			Provider: ProviderEmail, Avatar: PlaceholderAvatar,
		},
	}
}

func SeedProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "T-shirt Oversize", Description: "T-shirt confortable en coton bio",
			Price: decimal.NewFromInt(45), Sizes: []string{"S", "M", "L", "XL"},
			Colors: []string{"Noir", "Blanc", "Gris"}, Stock: 50,
			Images: []string{PlaceholderImage}, Category: "Homme", AddedOn: "2024-01-15",
		},
		{
			ID: 2, Name: "Robe d'été", Description: "Robe légère parfaite pour l'été",
			Price: decimal.NewFromInt(75), Sizes: []string{"XS", "S", "M", "L"},
			Colors: []string{"Rouge", "Bleu", "Jaune"}, Stock: 30,
			Images: []string{PlaceholderImage}, Category: "Femme", AddedOn: "2024-02-10",
		},
	}
}

func SeedOrders() []Order {
	orders := []Order{
		{
			ID: 1, CustomerID: 1, CustomerName: "Ahmed Ben Ali",
			Items: LineItems{
				{Name: "T-shirt Oversize", Quantity: 2, Price: decimal.NewFromInt(45)},
				{Name: "Jean Slim", Quantity: 1, Price: decimal.NewFromInt(65)},
			},
			OrderedOn: "2024-03-15", Status: OrderPreparing,
			ShippingAddress: "123 Rue de la Liberté, Tunis", PaymentMethod: MethodCard,
		},
		{
			ID: 2, CustomerID: 2, CustomerName: "Fatma Trabelsi",
			Items:     LineItems{{Name: "Robe d'été", Quantity: 1, Price: decimal.NewFromInt(75)}},
			OrderedOn: "2024-03-14", Status: OrderShipped,
			ShippingAddress: "456 Avenue Habib Bourguiba, Sfax", PaymentMethod: MethodPayPal,
		},
		{
			ID: 3, CustomerID: 3, CustomerName: "Mohamed Gharbi",
			Items:     LineItems{{Name: "Sneakers", Quantity: 1, Price: decimal.NewFromInt(120)}},
			OrderedOn: "2024-03-13", Status: OrderDelivered,
			ShippingAddress: "789 Rue des Oliviers, Sousse", PaymentMethod: MethodCash,
		},
	}
	for i := range orders {
		orders[i].Total = orders[i].Items.Total()
	}
	return orders
}

func SeedPayments() []Payment {
	return []Payment{
		{ID: 1, OrderID: 1, Amount: decimal.NewFromInt(155), Method: MethodCard, Status: PaymentPaid, PaidOn: "2024-03-15"},
		{ID: 2, OrderID: 2, Amount: decimal.NewFromInt(75), Method: MethodPayPal, Status: PaymentPaid, PaidOn: "2024-03-14"},
		{ID: 3, OrderID: 3, Amount: decimal.NewFromInt(120), Method: MethodCash, Status: PaymentPaid, PaidOn: "2024-03-13"},
		{ID: 4, OrderID: 4, Amount: decimal.RequireFromString("89.5"), Method: MethodCard, Status: PaymentFailed, PaidOn: "2024-03-12"},
	}
}

func SeedPromotions() []Promotion {
	return []Promotion{
		{
			ID: 1, Code: "BLACKFRIDAY25", Type: PromotionPercent, Value: decimal.NewFromInt(25),
			CategoryID: ref(1), CategoryName: "Homme",
			StartsOn: "2024-11-25", EndsOn: "2024-11-30", MaxUses: 100, Uses: 45,
		},
		{
			ID: 2, Code: "WELCOME10", Type: PromotionAmount, Value: decimal.NewFromInt(10),
			CategoryName: AllCategoriesLabel,
			StartsOn:     "2024-01-01", EndsOn: "2024-12-31", MaxUses: 500, Uses: 234,
		},
		{
			ID: 3, Code: "SUMMER20", Type: PromotionPercent, Value: decimal.NewFromInt(20),
			ProductID: ref(2), ProductName: "Robe d'été",
			StartsOn: "2024-06-01", EndsOn: "2024-08-31", MaxUses: 50, Uses: 12,
		},
	}
}

func SeedReviews() []Review {
	return []Review{
		{
			ID: 1, ProductID: 1, ProductName: "T-shirt Oversize", CustomerID: 1, CustomerName: "Ahmed Ben Ali",
			Rating: 5, Comment: "Excellent produit, très confortable et de bonne qualité !", Date: "2024-03-15",
		},
		{
			ID: 2, ProductID: 2, ProductName: "Robe d'été", CustomerID: 2, CustomerName: "Fatma Trabelsi",
			Rating: 4, Comment: "Belle robe, mais la taille est un peu grande.", Date: "2024-03-14",
		},
		{
			ID: 3, ProductID: 1, ProductName: "T-shirt Oversize", CustomerID: 3, CustomerName: "Mohamed Gharbi",
			Rating: 3, Comment: "Correct mais j'attendais mieux pour le prix.", Date: "2024-03-13",
		},
	}
}

func ref(id int64) *int64 {
	return &id
}
