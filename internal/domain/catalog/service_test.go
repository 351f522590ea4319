package catalog_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/customer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*catalog.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Collection{},
		&catalog.Promotion{},
		&catalog.Product{},
		&cart.Cart{},
		&cart.CartItem{},
		&customer.Customer{},
		&customer.Order{},
		&customer.OrderItem{},
	))
	return catalog.NewService(db, &config.Config{}), db
}

func intPtr(v int) *int { return &v }

func createRequest(title string, discount *int) *catalog.ProductCreateRequest {
	return &catalog.ProductCreateRequest{
		Title:             title,
		Slug:              title,
		Description:       "test product",
		BasePrice:         decimal.RequireFromString("19.99"),
		Inventory:         5,
		CollectionTitle:   "Shoes",
		PromotionDiscount: discount,
	}
}

func TestCreateProduct_ResolvesCollectionByTitle(t *testing.T) {
	svc, db := newTestService(t)

	first, err := svc.CreateProduct(createRequest("runner", nil))
	require.NoError(t, err)
	second, err := svc.CreateProduct(createRequest("walker", nil))
	require.NoError(t, err)

	require.NotNil(t, first.Collection)
	require.NotNil(t, second.Collection)
	assert.Equal(t, first.Collection.ID, second.Collection.ID,
		"same collection title must reuse the existing record")

	var collections int64
	require.NoError(t, db.Model(&catalog.Collection{}).Count(&collections).Error)
	assert.EqualValues(t, 1, collections)
}

func TestCreateProduct_ResolvesPromotionByDiscount(t *testing.T) {
	svc, db := newTestService(t)

	first, err := svc.CreateProduct(createRequest("runner", intPtr(20)))
	require.NoError(t, err)
	second, err := svc.CreateProduct(createRequest("walker", intPtr(20)))
	require.NoError(t, err)

	require.NotNil(t, first.Promotion)
	require.NotNil(t, second.Promotion)
	assert.Equal(t, first.Promotion.ID, second.Promotion.ID,
		"same discount must reuse the existing promotion")

	var promotions int64
	require.NoError(t, db.Model(&catalog.Promotion{}).Count(&promotions).Error)
	assert.EqualValues(t, 1, promotions)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	over := createRequest("over", intPtr(101))
	_, err := svc.CreateProduct(over)
	require.ErrorIs(t, err, catalog.ErrInvalidDiscount)

	negative := createRequest("negative", intPtr(-5))
	_, err = svc.CreateProduct(negative)
	require.ErrorIs(t, err, catalog.ErrInvalidDiscount)

	cheap := createRequest("cheap", nil)
	cheap.BasePrice = decimal.RequireFromString("0.99")
	_, err = svc.CreateProduct(cheap)
	require.ErrorIs(t, err, catalog.ErrInvalidPrice)

	empty := createRequest("empty", nil)
	empty.Inventory = 0
	_, err = svc.CreateProduct(empty)
	require.ErrorIs(t, err, catalog.ErrInvalidInventory)
}

func TestGetProduct_AbsentYieldsNil(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.GetProduct(12345)
	require.NoError(t, err)
	assert.Nil(t, view, "product reads signal not-found as an empty result")
}

func TestGetProduct_DerivedPricing(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(createRequest("runner", intPtr(15)))
	require.NoError(t, err)

	view, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.True(t, view.OnSale)
	assert.True(t, view.PriceAfterDiscount.Equal(decimal.RequireFromString("16.99")),
		"19.99 at 15%% off must be 16.99, got %s", view.PriceAfterDiscount)
}

func TestGetProducts_ListsAll(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(createRequest("b-runner", nil))
	require.NoError(t, err)
	_, err = svc.CreateProduct(createRequest("a-walker", intPtr(10)))
	require.NoError(t, err)

	views, err := svc.GetProducts()
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "a-walker", views[0].Title)
	assert.Equal(t, "b-runner", views[1].Title)
}

func TestUpdateProduct_AppliesOnlyPresentFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(createRequest("runner", nil))
	require.NoError(t, err)

	newTitle := "road runner"
	newPrice := decimal.RequireFromString("25.50")
	view, err := svc.UpdateProduct(created.ID, &catalog.ProductUpdateRequest{
		Title:     &newTitle,
		BasePrice: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "road runner", view.Title)
	assert.True(t, view.BasePrice.Equal(newPrice))
	// Untouched fields keep their values.
	assert.Equal(t, created.Slug, view.Slug)
	assert.Equal(t, created.Inventory, view.Inventory)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	title := "ghost"
	_, err := svc.UpdateProduct(999, &catalog.ProductUpdateRequest{Title: &title})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestDeleteProduct_ReturnsSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(createRequest("runner", intPtr(10)))
	require.NoError(t, err)

	snapshot, err := svc.DeleteProduct(created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "runner", snapshot.Title)

	view, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestDeleteProduct_AbsentYieldsNil(t *testing.T) {
	svc, _ := newTestService(t)

	snapshot, err := svc.DeleteProduct(999)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestDeleteProduct_RefusedWhileReferenced(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateProduct(createRequest("runner", nil))
	require.NoError(t, err)

	c := cart.Cart{}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, db.Create(&cart.CartItem{
		CartID:    c.ID,
		ProductID: created.ID,
		Quantity:  1,
	}).Error)

	_, err = svc.DeleteProduct(created.ID)
	require.ErrorIs(t, err, catalog.ErrProductInUse)

	// Still present after the refused delete.
	view, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, view)
}

func TestDeleteProduct_ClearsFeaturedReference(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateProduct(createRequest("runner", nil))
	require.NoError(t, err)

	require.NoError(t, db.Model(&catalog.Collection{}).
		Where("id = ?", created.Collection.ID).
		Update("featured_product_id", created.ID).Error)

	_, err = svc.DeleteProduct(created.ID)
	require.NoError(t, err)

	collection, err := svc.GetCollection(created.Collection.ID)
	require.NoError(t, err)
	assert.Nil(t, collection.FeaturedProduct)
}
