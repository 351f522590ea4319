// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// CartItemView represents a cart line item with its derived prices.
type CartItemView struct {
	ProductID              uint            `json:"product_id"`
	Title                  string          `json:"title"`
	Slug                   string          `json:"slug"`
	Quantity               int             `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	UnitPriceAfterDiscount decimal.Decimal `json:"unit_price_after_discount"`
	OnSale                 bool            `json:"on_sale"`
	LineTotal              decimal.Decimal `json:"line_total"`
}

// CartView represents a shopping cart with items and total. The total and
// the per-item effective prices are computed at view-assembly time from
// the current promotion linkage; nothing derived is ever stored.
type CartView struct {
	ID         uint            `json:"id"`
	Items      []CartItemView  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateCart creates a new empty cart.
func (s *Service) CreateCart() (*CartView, error) {
	c := Cart{}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return s.GetCart(c.ID)
}

// GetCart retrieves a cart projection with its items and total price.
func (s *Service) GetCart(id uint) (*CartView, error) {
	var c Cart
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Promotion").
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	view := s.buildCartView(&c)
	return &view, nil
}

// DeleteCart deletes a cart and, through the cascade, its items.
func (s *Service) DeleteCart(id uint) error {
	var c Cart
	err := s.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Delete(&Cart{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}

// AddToCart merges a (product, quantity) pair into the cart: an existing
// line item is incremented, otherwise a new one is inserted. The merge is
// a single atomic upsert on the (cart_id, product_id) unique index, so
// concurrent additions for the same pair serialize instead of losing
// updates. The refreshed cart view is returned.
func (s *Service) AddToCart(cartID uint, req *AddToCartRequest) (*CartView, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var c Cart
	err := s.db.First(&c, cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var prod catalog.Product
	err = s.db.First(&prod, req.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	item := CartItem{
		CartID:    cartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + excluded.quantity"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return s.GetCart(cartID)
}

// buildCartView assembles the projection, folding the effective price over
// the line items. An empty cart has a total of zero.
func (s *Service) buildCartView(c *Cart) CartView {
	items := make([]CartItemView, len(c.Items))
	total := decimal.Zero

	for i, item := range c.Items {
		discount := item.Product.DiscountPercent()
		lineTotal := pricing.LineTotal(item.Product.BasePrice, discount, item.Quantity)

		items[i] = CartItemView{
			ProductID:              item.ProductID,
			Title:                  item.Product.Title,
			Slug:                   item.Product.Slug,
			Quantity:               item.Quantity,
			UnitPrice:              item.Product.BasePrice,
			UnitPriceAfterDiscount: pricing.EffectivePrice(item.Product.BasePrice, discount),
			OnSale:                 pricing.OnSale(discount),
			LineTotal:              lineTotal,
		}
		total = total.Add(lineTotal)
	}

	return CartView{
		ID:         c.ID,
		Items:      items,
		TotalPrice: total,
		CreatedAt:  c.CreatedAt,
	}
}
