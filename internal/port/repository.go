package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// CounterRepository allocates sequential document numbers. AllocateNext
// atomically increments the named counter and returns the new value;
// concurrent callers on the same key never observe the same integer.
type CounterRepository interface {
	AllocateNext(ctx context.Context, key string) (int64, error)
	Current(ctx context.Context, key string) (int64, error)
}

// InvoiceRepository persists invoices together with their lines.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice, lines []domain.InvoiceLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, []domain.InvoiceLine, error)
	List(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Invoice, int, error)
}

// PurchaseRepository persists purchase bills.
type PurchaseRepository interface {
	Create(ctx context.Context, bill *domain.PurchaseBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseBill, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseBill, int, error)
}

// ProductRepository persists the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository persists customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorRepository persists vendors.
type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, v *domain.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository persists locally recorded orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	ExistsByOrderItemID(ctx context.Context, channel domain.Channel, orderItemID string) (bool, error)
	ListByChannel(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Order, int, error)
	ListAllByChannel(ctx context.Context, channel domain.Channel) ([]domain.Order, error)
}

// SettlementRepository persists resolved settlement report rows.
type SettlementRepository interface {
	Create(ctx context.Context, row *domain.SettlementRow) error
	ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]domain.SettlementRow, error)
	ListByReportType(ctx context.Context, reportType domain.ReportType, since time.Time) ([]domain.SettlementRow, error)
}

// FileMetaRepository persists metadata for uploaded settlement files.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
}
