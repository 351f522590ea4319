package customer

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
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
		&Customer{},
		&Address{},
		&Order{},
		&OrderItem{},
	))
	return NewService(db, &config.Config{}), db
}

func TestCreateCustomer_DefaultsMembership(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateCustomer(&CustomerCreateRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, MembershipBronze, created.Membership)
}

func TestCreateCustomer_KeepsRequestedMembership(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateCustomer(&CustomerCreateRequest{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "grace@example.com",
		Membership: MembershipGold,
	})
	require.NoError(t, err)
	assert.Equal(t, MembershipGold, created.Membership)
}

func TestGetCustomer_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetCustomer(404)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetCustomer_PreloadsAddresses(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateCustomer(&CustomerCreateRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&Address{
		Street:     "1 Navy Way",
		City:       "Arlington",
		CustomerID: created.ID,
	}).Error)

	fetched, err := svc.GetCustomer(created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Addresses, 1)
	assert.Equal(t, "Arlington", fetched.Addresses[0].City)
}

func TestGetCustomerOrders_NewestFirst(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateCustomer(&CustomerCreateRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)

	var collection catalog.Collection
	require.NoError(t, db.Where("title = ?", "Default").
		Attrs(catalog.Collection{Title: "Default"}).
		FirstOrCreate(&collection).Error)
	prod := catalog.Product{
		Title:        "widget",
		Slug:         "widget",
		BasePrice:    decimal.RequireFromString("10.00"),
		Inventory:    5,
		CollectionID: collection.ID,
	}
	require.NoError(t, db.Create(&prod).Error)

	older := Order{CustomerID: created.ID, PlacedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	newer := Order{CustomerID: created.ID, PlacedAt: time.Now()}
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&OrderItem{
		OrderID:   newer.ID,
		ProductID: prod.ID,
		Quantity:  2,
		UnitPrice: prod.BasePrice,
	}).Error)

	orders, err := svc.GetCustomerOrders(created.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "widget", orders[0].Items[0].Product.Title)
}

func TestGetCustomerOrders_UnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetCustomerOrders(404)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}
