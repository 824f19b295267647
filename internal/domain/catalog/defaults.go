package catalog

import "github.com/shopspring/decimal"

// DefaultProducts returns the bundled sample catalog used when neither the
// local cache nor the remote source has anything to offer. It is returned
// as a fresh slice so callers can mutate their copy freely.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Fresh Tomatoes",
			Price:       decimal.NewFromInt(120),
			Image:       "https://picsum.photos/id/1080/400/300",
			Category:    CategoryVegetables,
			Unit:        UnitKg,
			Description: "Locally grown, vine-ripened red tomatoes. Perfect for salads, sauces, and sandwiches.",
		},
		{
			ID:          2,
			Name:        "Crisp Onions",
			Price:       decimal.NewFromInt(80),
			Image:       "https://picsum.photos/id/292/400/300",
			Category:    CategoryVegetables,
			Unit:        UnitKg,
			Description: "High-quality red onions with a sharp flavor and crisp texture. Essential for desi cooking.",
		},
		{
			ID:          3,
			Name:        "Organic Potatoes",
			Price:       decimal.NewFromInt(60),
			Image:       "https://picsum.photos/id/1078/400/300",
			Category:    CategoryVegetables,
			Unit:        UnitKg,
			Description: "Versatile organic potatoes. Great for baking, mashing, or frying.",
		},
		{
			ID:          4,
			Name:        "Sweet Apples",
			Price:       decimal.NewFromInt(250),
			Image:       "https://picsum.photos/id/102/400/300",
			Category:    CategoryFruits,
			Unit:        UnitKg,
			Description: "Crunchy and sweet seasonal apples picked from the orchards of the north.",
		},
		{
			ID:          5,
			Name:        "Ripe Bananas",
			Price:       decimal.NewFromInt(150),
			Image:       "https://picsum.photos/id/219/400/300",
			Category:    CategoryFruits,
			Unit:        UnitPiece,
			Description: "Energy-rich ripe bananas, naturally sweet and perfect for smoothies or snacks.",
		},
		{
			ID:          6,
			Name:        "Juicy Oranges",
			Price:       decimal.NewFromInt(180),
			Image:       "https://picsum.photos/id/40/400/300",
			Category:    CategoryFruits,
			Unit:        UnitKg,
			Description: "Vitamin C packed juicy oranges. Sweet, tangy, and refreshing.",
		},
		{
			ID:          7,
			Name:        "Weekly Veggie Box",
			Price:       decimal.NewFromInt(800),
			Image:       "https://picsum.photos/id/312/400/300",
			Category:    CategoryBundles,
			Unit:        UnitBundle,
			Description: "A curated selection of seasonal vegetables enough for a small family for a week.",
		},
		{
			ID:          8,
			Name:        "Fruit Fiesta Basket",
			Price:       decimal.NewFromInt(1200),
			Image:       "https://picsum.photos/id/355/400/300",
			Category:    CategoryBundles,
			Unit:        UnitBundle,
			Description: "A premium assortment of the freshest seasonal fruits presented in a lovely basket.",
		},
		{
			ID:          9,
			Name:        "Summer Mangoes",
			Price:       decimal.NewFromInt(300),
			Image:       "https://picsum.photos/id/211/400/300",
			Category:    CategorySeasonal,
			Unit:        UnitKg,
			Description: "The king of fruits! Sweet, aromatic, and pulpy mangoes available for a limited time.",
		},
		{
			ID:          10,
			Name:        "Winter Greens",
			Price:       decimal.NewFromInt(100),
			Image:       "https://picsum.photos/id/1015/400/300",
			Category:    CategorySeasonal,
			Unit:        UnitKg,
			Description: "Fresh mustard greens (Sarson) and spinach, perfect for traditional winter dishes.",
		},
	}
}
