// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection groups products under a title. The featured product is an
// informational back-reference and is nulled out when the product is
// deleted.
type Collection struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"uniqueIndex;not null;size:255" json:"title"`
	FeaturedProductID *uint     `gorm:"index" json:"featured_product_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	FeaturedProduct *Product `gorm:"foreignKey:FeaturedProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"featured_product,omitempty"`
}

// Promotion is a whole-number percentage discount applicable to zero or
// more products.
type Promotion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Description     string    `gorm:"size:255" json:"description"`
	DiscountPercent int       `gorm:"not null;uniqueIndex" json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Product represents a catalog product. A product belongs to exactly one
// collection and carries at most one active promotion.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null;size:255" json:"title"`
	Slug        string          `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Brand       string          `gorm:"size:255" json:"brand,omitempty"`
	Color       string          `gorm:"size:255" json:"color,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Rating      *float64        `json:"rating,omitempty"`
	Popular     *bool           `json:"popular,omitempty"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Inventory   int             `gorm:"not null" json:"inventory"`
	CollectionID uint           `gorm:"not null;index" json:"collection_id"`
	PromotionID  *uint          `gorm:"index" json:"promotion_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relationships
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"collection"`
	Promotion  *Promotion `gorm:"foreignKey:PromotionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"promotion,omitempty"`
}

// TableName overrides
func (Collection) TableName() string { return "collections" }
func (Promotion) TableName() string  { return "promotions" }
func (Product) TableName() string    { return "products" }

// DiscountPercent returns the linked promotion's discount, or nil when no
// promotion is attached. The Promotion relation must be loaded.
func (p *Product) DiscountPercent() *int {
	if p.Promotion == nil {
		return nil
	}
	return &p.Promotion.DiscountPercent
}
