// internal/domain/customer/service.go
package customer

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Service handles customer record access
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CustomerCreateRequest represents customer creation data
type CustomerCreateRequest struct {
	FirstName  string     `json:"first_name" binding:"required"`
	LastName   string     `json:"last_name" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership string     `json:"membership" binding:"omitempty,oneof=B S G"`
}

// CreateCustomer creates a new customer record.
func (s *Service) CreateCustomer(req *CustomerCreateRequest) (*Customer, error) {
	membership := req.Membership
	if membership == "" {
		membership = MembershipBronze
	}

	c := Customer{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		Membership: membership,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &c, nil
}

// GetCustomer retrieves a customer with addresses.
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	var c Customer
	err := s.db.Preload("Addresses").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	return &c, nil
}

// GetCustomers retrieves all customers.
func (s *Service) GetCustomers() ([]Customer, error) {
	var customers []Customer
	if err := s.db.Order("last_name ASC, first_name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, nil
}

// GetCustomerOrders retrieves a customer's orders with their items.
func (s *Service) GetCustomerOrders(customerID uint) ([]Order, error) {
	var c Customer
	err := s.db.First(&c, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}

	var orders []Order
	err = s.db.Preload("Items").Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}
