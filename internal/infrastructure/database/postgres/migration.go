// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/customer"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&catalog.Collection{},
		&catalog.Promotion{},
		&catalog.Product{},

		&customer.Customer{},
		&customer.Address{},
		&customer.Order{},
		&customer.OrderItem{},

		&cart.Cart{},
		&cart.CartItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		"CREATE INDEX IF NOT EXISTS idx_products_collection ON products(collection_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_promotion ON products(promotion_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_products_title ON products(title)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_product ON cart_items(product_id)",

		"CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)",
		"CREATE INDEX IF NOT EXISTS idx_addresses_customer ON addresses(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_placed ON orders(customer_id, placed_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("Index creation completed")
	return nil
}

// SeedInitialData inserts development data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("Products already present, skipping seed")
		return nil
	}

	collection := catalog.Collection{Title: "Sneakers"}
	if err := m.db.Create(&collection).Error; err != nil {
		return fmt.Errorf("failed to seed collection: %w", err)
	}

	promotion := catalog.Promotion{Description: "20% off", DiscountPercent: 20}
	if err := m.db.Create(&promotion).Error; err != nil {
		return fmt.Errorf("failed to seed promotion: %w", err)
	}

	products := []catalog.Product{
		{
			Title:        "Canvas Low Top",
			Slug:         "canvas-low-top",
			Description:  "Everyday canvas sneaker",
			BasePrice:    decimal.RequireFromString("20.00"),
			Inventory:    100,
			CollectionID: collection.ID,
		},
		{
			Title:        "Leather Runner",
			Slug:         "leather-runner",
			Description:  "Leather running shoe",
			BasePrice:    decimal.RequireFromString("50.00"),
			Inventory:    40,
			CollectionID: collection.ID,
			PromotionID:  &promotion.ID,
		},
	}
	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Title, err)
		}
	}

	log.Println("Initial data seeded successfully")
	return nil
}
