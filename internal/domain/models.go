package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
)

// Product is a sellable item in the shop catalog.
type Product struct {
	ID             uuid.UUID `db:"id" json:"id"`
	SKU            string    `db:"sku" json:"sku"`
	Name           string    `db:"name" json:"name"`
	UnitPrice      float64   `db:"unit_price" json:"unit_price"`
	TaxRatePercent float64   `db:"tax_rate_percent" json:"tax_rate_percent"`
	StockQuantity  int       `db:"stock_quantity" json:"stock_quantity"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Customer is an invoice recipient.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vendor is a purchase bill counterparty.
type Vendor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is a generated sales invoice. Number comes from the sequential
// counter for the invoice's channel and is immutable after creation.
type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Number         string          `db:"number" json:"number"`
	Channel        Channel         `db:"channel" json:"channel"`
	TaxMode        billing.TaxMode `db:"tax_mode" json:"tax_mode"`
	CustomerID     *uuid.UUID      `db:"customer_id" json:"customer_id"`
	InvoiceDate    time.Time       `db:"invoice_date" json:"invoice_date"`
	SubTotal       float64         `db:"sub_total" json:"sub_total"`
	TaxTotal       float64         `db:"tax_total" json:"tax_total"`
	LogisticsFee   float64         `db:"logistics_fee" json:"logistics_fee"`
	OtherTax       float64         `db:"other_tax" json:"other_tax"`
	MarketplaceFee float64         `db:"marketplace_fee" json:"marketplace_fee"`
	RefundAmount   float64         `db:"refund_amount" json:"refund_amount"`
	GrandTotal     float64         `db:"grand_total" json:"grand_total"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceLine is one computed line of an invoice. Amounts are stored at full
// precision; two-decimal rounding is presentation-only.
type InvoiceLine struct {
	ID              uuid.UUID `db:"id" json:"id"`
	InvoiceID       uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Position        int       `db:"position" json:"position"`
	Description     string    `db:"description" json:"description"`
	SKU             string    `db:"sku" json:"sku"`
	UnitPrice       float64   `db:"unit_price" json:"unit_price"`
	Quantity        int       `db:"quantity" json:"quantity"`
	DiscountPercent float64   `db:"discount_percent" json:"discount_percent"`
	TaxRatePercent  float64   `db:"tax_rate_percent" json:"tax_rate_percent"`
	TaxableValue    float64   `db:"taxable_value" json:"taxable_value"`
	TaxAmount       float64   `db:"tax_amount" json:"tax_amount"`
	LineTotal       float64   `db:"line_total" json:"line_total"`
}

// PurchaseBill records an expense against a vendor. Its number uses the
// purchase counter with no zero padding.
type PurchaseBill struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Number    string     `db:"number" json:"number"`
	VendorID  *uuid.UUID `db:"vendor_id" json:"vendor_id"`
	BillDate  time.Time  `db:"bill_date" json:"bill_date"`
	Category  string     `db:"category" json:"category"`
	Notes     string     `db:"notes" json:"notes"`
	Amount    float64    `db:"amount" json:"amount"`
	TaxAmount float64    `db:"tax_amount" json:"tax_amount"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Order is a locally recorded marketplace or offline order. Orders form the
// source side of reconciliation against uploaded settlement reports.
type Order struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Channel     Channel     `db:"channel" json:"channel"`
	OrderID     string      `db:"order_id" json:"order_id"`
	OrderItemID string      `db:"order_item_id" json:"order_item_id"`
	SKU         string      `db:"sku" json:"sku"`
	Quantity    int         `db:"quantity" json:"quantity"`
	Amount      float64     `db:"amount" json:"amount"`
	Status      OrderStatus `db:"status" json:"status"`
	OrderedAt   time.Time   `db:"ordered_at" json:"ordered_at"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// ReconKeys returns the two alternate join keys used by reconciliation.
func (o Order) ReconKeys() (string, string) {
	return o.OrderID, o.OrderItemID
}

// SettlementRow is one resolved spreadsheet row from an uploaded settlement
// report. RawData retains the original row for traceability.
type SettlementRow struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UploadID    uuid.UUID       `db:"upload_id" json:"upload_id"`
	ReportType  ReportType      `db:"report_type" json:"report_type"`
	RowIndex    int             `db:"row_index" json:"row_index"`
	OrderID     string          `db:"order_id" json:"order_id"`
	OrderItemID string          `db:"order_item_id" json:"order_item_id"`
	SKU         string          `db:"sku" json:"sku"`
	Fields      json.RawMessage `db:"fields" json:"fields"`
	RawData     json.RawMessage `db:"raw_data" json:"raw_data"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// ReconKeys returns the two alternate join keys used by reconciliation.
func (r SettlementRow) ReconKeys() (string, string) {
	return r.OrderID, r.OrderItemID
}

// FileMeta stores metadata about an uploaded settlement spreadsheet.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	ReportType   ReportType `db:"report_type" json:"report_type"`
	Channel      Channel    `db:"channel" json:"channel"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
