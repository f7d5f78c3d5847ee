package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

// CatalogService groups the simple CRUD surfaces for products, customers
// and vendors.
type CatalogService interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	CreateVendor(ctx context.Context, v *domain.Vendor) error
	GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	ListVendors(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	UpdateVendor(ctx context.Context, v *domain.Vendor) error
	DeleteVendor(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	productRepo  port.ProductRepository
	customerRepo port.CustomerRepository
	vendorRepo   port.VendorRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(
	productRepo port.ProductRepository,
	customerRepo port.CustomerRepository,
	vendorRepo port.VendorRepository,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.SKU == "" {
		return fmt.Errorf("product sku is required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.productRepo.Create(ctx, p)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.productRepo.GetBySKU(ctx, sku)
}

func (s *catalogService) ListProducts(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	return s.productRepo.List(ctx, offset, limit)
}

func (s *catalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return s.productRepo.Update(ctx, p)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *catalogService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *catalogService) ListCustomers(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, offset, limit)
}

func (s *catalogService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	return s.customerRepo.Update(ctx, c)
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *catalogService) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	if v.Name == "" {
		return fmt.Errorf("vendor name is required")
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return s.vendorRepo.Create(ctx, v)
}

func (s *catalogService) GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, id)
}

func (s *catalogService) ListVendors(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	return s.vendorRepo.List(ctx, offset, limit)
}

func (s *catalogService) UpdateVendor(ctx context.Context, v *domain.Vendor) error {
	return s.vendorRepo.Update(ctx, v)
}

func (s *catalogService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.vendorRepo.Delete(ctx, id)
}
