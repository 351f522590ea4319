// internal/domain/customer/entity.go
package customer

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Membership tiers.
const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

// Payment status values. These are static enumerations: nothing in this
// codebase transitions them.
const (
	PaymentStatusPending  = "P"
	PaymentStatusComplete = "C"
	PaymentStatusFailed   = "F"
)

// Customer represents a store customer record.
type Customer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FirstName  string     `gorm:"not null;size:255" json:"first_name"`
	LastName   string     `gorm:"not null;size:255" json:"last_name"`
	Email      string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Phone      string     `gorm:"size:255" json:"phone"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Membership string     `gorm:"size:1;default:'B'" json:"membership"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"orders,omitempty"`
}

// Address represents a customer address.
type Address struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Street     string    `gorm:"not null;size:255" json:"street"`
	City       string    `gorm:"not null;size:255" json:"city"`
	Zip        string    `gorm:"size:255" json:"zip,omitempty"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Order represents a placed order. Orders and their items are storage-only
// in this service: no workflow logic touches them.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlacedAt      time.Time `gorm:"autoCreateTime" json:"placed_at"`
	PaymentStatus string    `gorm:"size:1;default:'P'" json:"payment_status"`
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"items,omitempty"`
}

// OrderItem represents one product line within an order. UnitPrice is the
// price captured when the order was placed.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	// Relationships
	Product catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`
}

// TableName overrides
func (Customer) TableName() string  { return "customers" }
func (Address) TableName() string   { return "addresses" }
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
