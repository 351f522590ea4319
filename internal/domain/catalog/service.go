// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrProductInUse       = errors.New("product is referenced by carts or orders")
	ErrInvalidDiscount    = errors.New("discount percent must be between 0 and 100")
	ErrInvalidPrice       = errors.New("base price must be at least 1")
	ErrInvalidInventory   = errors.New("inventory must be at least 1")
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// PromotionRef is the promotion shape embedded in product views.
type PromotionRef struct {
	ID              uint   `json:"id"`
	Description     string `json:"description,omitempty"`
	DiscountPercent int    `json:"discount_percent"`
}

// CollectionRef is the collection shape embedded in product views.
type CollectionRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ProductView is the API-facing product projection. The derived fields
// (price after discount, on-sale flag) are computed when the view is
// assembled and are never stored, so they always reflect the current
// promotion linkage.
type ProductView struct {
	ID                 uint            `json:"id"`
	Title              string          `json:"title"`
	Slug               string          `json:"slug"`
	Brand              string          `json:"brand,omitempty"`
	Color              string          `json:"color,omitempty"`
	Description        string          `json:"description"`
	Rating             *float64        `json:"rating,omitempty"`
	Popular            *bool           `json:"popular,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price"`
	PriceAfterDiscount decimal.Decimal `json:"price_after_discount"`
	OnSale             bool            `json:"on_sale"`
	Inventory          int             `json:"inventory"`
	Collection         *CollectionRef  `json:"collection,omitempty"`
	Promotion          *PromotionRef   `json:"promotion,omitempty"`
}

// CollectionView is the API-facing collection projection.
type CollectionView struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	FeaturedProduct *uint  `json:"featured_product_id,omitempty"`
}

// ProductCreateRequest represents product creation data. Collection and
// promotion are resolved by natural key (title / discount) and created
// when absent.
type ProductCreateRequest struct {
	Title             string          `json:"title" binding:"required"`
	Slug              string          `json:"slug" binding:"required"`
	Brand             string          `json:"brand"`
	Color             string          `json:"color"`
	Description       string          `json:"description"`
	Rating            *float64        `json:"rating"`
	Popular           *bool           `json:"popular"`
	BasePrice         decimal.Decimal `json:"base_price" binding:"required"`
	Inventory         int             `json:"inventory" binding:"required,min=1"`
	CollectionTitle   string          `json:"collection_title" binding:"required"`
	PromotionDiscount *int            `json:"promotion_discount"`
}

// ProductUpdateRequest represents a partial product update. Only non-nil
// fields are applied.
type ProductUpdateRequest struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Brand       *string          `json:"brand"`
	Color       *string          `json:"color"`
	Description *string          `json:"description"`
	Rating      *float64         `json:"rating"`
	Popular     *bool            `json:"popular"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Inventory   *int             `json:"inventory"`
}

// GetProduct retrieves a single product view. An absent product yields
// (nil, nil) rather than an error; this matches the historical API, which
// signals not-found as an empty result for product reads.
func (s *Service) GetProduct(id uint) (*ProductView, error) {
	var prod Product
	err := s.db.Preload("Collection").Preload("Promotion").First(&prod, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	view := s.buildProductView(&prod)
	return &view, nil
}

// GetProducts retrieves all product views ordered by title.
func (s *Service) GetProducts() ([]ProductView, error) {
	var products []Product
	err := s.db.Preload("Collection").Preload("Promotion").
		Order("title ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = s.buildProductView(&products[i])
	}
	return views, nil
}

// CreateProduct creates a product, resolving its collection by title and
// its promotion by discount with find-or-create semantics. Everything runs
// in one transaction so concurrent creations cannot race duplicate
// collections or promotions past the unique indexes.
func (s *Service) CreateProduct(req *ProductCreateRequest) (*ProductView, error) {
	if req.BasePrice.LessThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidPrice
	}
	if req.Inventory < 1 {
		return nil, ErrInvalidInventory
	}
	if req.PromotionDiscount != nil && (*req.PromotionDiscount < 0 || *req.PromotionDiscount > 100) {
		return nil, ErrInvalidDiscount
	}

	var prod Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var collection Collection
		if err := tx.Where("title = ?", req.CollectionTitle).
			Attrs(Collection{Title: req.CollectionTitle}).
			FirstOrCreate(&collection).Error; err != nil {
			return fmt.Errorf("failed to resolve collection %q: %w", req.CollectionTitle, err)
		}

		var promotionID *uint
		if req.PromotionDiscount != nil {
			// String condition instead of a struct one: gorm drops
			// zero-valued struct fields, which would mismatch a 0% discount.
			var promotion Promotion
			if err := tx.Where("discount_percent = ?", *req.PromotionDiscount).
				Attrs(Promotion{
					DiscountPercent: *req.PromotionDiscount,
					Description:     fmt.Sprintf("%d%% off", *req.PromotionDiscount),
				}).
				FirstOrCreate(&promotion).Error; err != nil {
				return fmt.Errorf("failed to resolve promotion %d%%: %w", *req.PromotionDiscount, err)
			}
			promotionID = &promotion.ID
		}

		prod = Product{
			Title:        req.Title,
			Slug:         req.Slug,
			Brand:        req.Brand,
			Color:        req.Color,
			Description:  req.Description,
			Rating:       req.Rating,
			Popular:      req.Popular,
			BasePrice:    req.BasePrice,
			Inventory:    req.Inventory,
			CollectionID: collection.ID,
			PromotionID:  promotionID,
		}
		if err := tx.Create(&prod).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(prod.ID)
}

// UpdateProduct applies a partial update to a product. Only fields present
// in the request are touched.
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*ProductView, error) {
	var prod Product
	err := s.db.First(&prod, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	if req.Title != nil {
		prod.Title = *req.Title
	}
	if req.Slug != nil {
		prod.Slug = *req.Slug
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.Color != nil {
		prod.Color = *req.Color
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Rating != nil {
		prod.Rating = req.Rating
	}
	if req.Popular != nil {
		prod.Popular = req.Popular
	}
	if req.BasePrice != nil {
		if req.BasePrice.LessThan(decimal.NewFromInt(1)) {
			return nil, ErrInvalidPrice
		}
		prod.BasePrice = *req.BasePrice
	}
	if req.Inventory != nil {
		if *req.Inventory < 1 {
			return nil, ErrInvalidInventory
		}
		prod.Inventory = *req.Inventory
	}

	if err := s.db.Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(prod.ID)
}

// DeleteProduct removes a product and returns a snapshot of the deleted
// record. An absent product yields (nil, nil). Deletion is refused while
// cart or order items still reference the product; a collection's featured
// product reference is nulled out instead.
func (s *Service) DeleteProduct(id uint) (*ProductView, error) {
	var prod Product
	err := s.db.Preload("Collection").Preload("Promotion").First(&prod, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	snapshot := s.buildProductView(&prod)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cartRefs int64
		if err := tx.Table("cart_items").Where("product_id = ?", id).Count(&cartRefs).Error; err != nil {
			return fmt.Errorf("failed to check cart references: %w", err)
		}
		var orderRefs int64
		if err := tx.Table("order_items").Where("product_id = ?", id).Count(&orderRefs).Error; err != nil {
			return fmt.Errorf("failed to check order references: %w", err)
		}
		if cartRefs > 0 || orderRefs > 0 {
			return ErrProductInUse
		}

		// Featured-product links are informational only and null out.
		if err := tx.Model(&Collection{}).
			Where("featured_product_id = ?", id).
			Update("featured_product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear featured product references: %w", err)
		}

		if err := tx.Delete(&Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// GetCollections retrieves all collections ordered by title.
func (s *Service) GetCollections() ([]CollectionView, error) {
	var collections []Collection
	if err := s.db.Order("title ASC").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve collections: %w", err)
	}

	views := make([]CollectionView, len(collections))
	for i, c := range collections {
		views[i] = CollectionView{
			ID:              c.ID,
			Title:           c.Title,
			FeaturedProduct: c.FeaturedProductID,
		}
	}
	return views, nil
}

// GetCollection retrieves a single collection.
func (s *Service) GetCollection(id uint) (*CollectionView, error) {
	var collection Collection
	err := s.db.First(&collection, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve collection: %w", err)
	}

	return &CollectionView{
		ID:              collection.ID,
		Title:           collection.Title,
		FeaturedProduct: collection.FeaturedProductID,
	}, nil
}

// buildProductView assembles the projection with its derived pricing
// fields. Collection and Promotion must be preloaded.
func (s *Service) buildProductView(prod *Product) ProductView {
	discount := prod.DiscountPercent()

	view := ProductView{
		ID:                 prod.ID,
		Title:              prod.Title,
		Slug:               prod.Slug,
		Brand:              prod.Brand,
		Color:              prod.Color,
		Description:        prod.Description,
		Rating:             prod.Rating,
		Popular:            prod.Popular,
		BasePrice:          prod.BasePrice,
		PriceAfterDiscount: pricing.EffectivePrice(prod.BasePrice, discount),
		OnSale:             pricing.OnSale(discount),
		Inventory:          prod.Inventory,
	}

	if prod.Collection.ID != 0 {
		view.Collection = &CollectionRef{ID: prod.Collection.ID, Title: prod.Collection.Title}
	}
	if prod.Promotion != nil {
		view.Promotion = &PromotionRef{
			ID:              prod.Promotion.ID,
			Description:     prod.Promotion.Description,
			DiscountPercent: prod.Promotion.DiscountPercent,
		}
	}
	return view
}
