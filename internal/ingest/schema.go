package ingest

// Canonical field names shared by both report schemas.
const (
	FieldOrderID     = "orderId"
	FieldOrderItemID = "orderItemId"
	FieldSKU         = "sku"
)

// Order report fields.
const (
	FieldQuantity            = "quantity"
	FieldSaleAmount          = "saleAmount"
	FieldPriceBeforeDiscount = "priceBeforeDiscount"
	FieldTotalDiscount       = "totalDiscount"
	FieldPriceAfterDiscount  = "priceAfterDiscount"
	FieldSettlementValue     = "settlementValue"
	FieldOrderStatus         = "orderStatus"
)

// GST report fields.
const (
	FieldInvoiceNumber      = "invoiceNumber"
	FieldInvoiceDate        = "invoiceDate"
	FieldFinalInvoiceAmount = "finalInvoiceAmount"
	FieldTaxableValue       = "taxableValue"
	FieldCGSTAmount         = "cgstAmount"
	FieldSGSTAmount         = "sgstAmount"
	FieldIGSTAmount         = "igstAmount"
	FieldCessAmount         = "cessAmount"
	FieldCustomerGSTIN      = "customerGstin"
)

// OrderReportSchema matches marketplace order/settlement exports. Headers
// drift between report vintages, so matching is by substring containment.
var OrderReportSchema = &Schema{
	Name:  "order_report",
	Match: MatchContains,
	Fields: []FieldSpec{
		{Name: FieldOrderID, Aliases: []string{"Order ID", "Order No"}, Kind: KindString},
		{Name: FieldOrderItemID, Aliases: []string{"Order Item ID", "Sub Order No"}, Kind: KindString},
		{Name: FieldSKU, Aliases: []string{"SKU", "Seller SKU"}, Kind: KindString},
		{Name: FieldQuantity, Aliases: []string{"Quantity", "Qty"}, Kind: KindNumber},
		{Name: FieldSaleAmount, Aliases: []string{"Sale Amount", "Order Item Value"}, Kind: KindNumber},
		{Name: FieldPriceBeforeDiscount, Aliases: []string{"Price before discount", "Listing Price"}, Kind: KindNumber},
		// No bare "Discount" alias: under containment matching it would
		// also claim the before/after price headers.
		{Name: FieldTotalDiscount, Aliases: []string{"Total Discount", "Seller Discount"}, Kind: KindNumber},
		{Name: FieldPriceAfterDiscount, Aliases: []string{"Price after discount", "Final Selling Price"}, Kind: KindNumber},
		{Name: FieldSettlementValue, Aliases: []string{"Settlement Value", "Bank Settlement Value"}, Kind: KindNumber},
		{Name: FieldOrderStatus, Aliases: []string{"Order Status", "Order State"}, Kind: KindString},
	},
	Derive: func(r *Record) {
		// Older exports omit the precomputed discounted price column.
		if r.Numbers[FieldPriceAfterDiscount] == 0 {
			if before := r.Numbers[FieldPriceBeforeDiscount]; before != 0 {
				r.Numbers[FieldPriceAfterDiscount] = before - r.Numbers[FieldTotalDiscount]
			}
		}
	},
}

// GSTReportSchema matches marketplace GST/tax exports. Headers are stable
// across vintages, so matching is exact.
var GSTReportSchema = &Schema{
	Name:  "gst_report",
	Match: MatchExact,
	Fields: []FieldSpec{
		{Name: FieldOrderID, Aliases: []string{"Order ID", "Order Id"}, Kind: KindString},
		{Name: FieldOrderItemID, Aliases: []string{"Order Item ID", "Order Item Id"}, Kind: KindString},
		{Name: FieldSKU, Aliases: []string{"SKU", "SKU Code"}, Kind: KindString},
		{Name: FieldInvoiceNumber, Aliases: []string{"Invoice Number", "Buyer Invoice ID"}, Kind: KindString},
		{Name: FieldInvoiceDate, Aliases: []string{"Invoice Date", "Buyer Invoice Date"}, Kind: KindString},
		{Name: FieldFinalInvoiceAmount, Aliases: []string{"Final Invoice Amount", "Final Invoice Amount (₹)"}, Kind: KindNumber},
		{Name: FieldTaxableValue, Aliases: []string{"Taxable Value", "Taxable Value (Final Invoice Amount - Taxes)"}, Kind: KindNumber},
		{Name: FieldCGSTAmount, Aliases: []string{"CGST Amount", "CGST Amount (₹)"}, Kind: KindNumber},
		{Name: FieldSGSTAmount, Aliases: []string{"SGST Amount", "SGST Amount (₹)", "SGST/UTGST Amount"}, Kind: KindNumber},
		{Name: FieldIGSTAmount, Aliases: []string{"IGST Amount", "IGST Amount (₹)"}, Kind: KindNumber},
		{Name: FieldCessAmount, Aliases: []string{"Cess Amount", "Compensation Cess Amount"}, Kind: KindNumber},
		{Name: FieldCustomerGSTIN, Aliases: []string{"Customer's GSTIN", "Buyer GSTIN"}, Kind: KindString},
	},
	Derive: func(r *Record) {
		// Some vintages only carry the invoice total and the four GST
		// component amounts.
		if r.Numbers[FieldTaxableValue] == 0 {
			if final := r.Numbers[FieldFinalInvoiceAmount]; final != 0 {
				taxes := r.Numbers[FieldCGSTAmount] + r.Numbers[FieldSGSTAmount] +
					r.Numbers[FieldIGSTAmount] + r.Numbers[FieldCessAmount]
				r.Numbers[FieldTaxableValue] = final - taxes
			}
		}
	},
}

// SchemaFor returns the schema registered for a report type name, or nil.
func SchemaFor(reportType string) *Schema {
	switch reportType {
	case OrderReportSchema.Name:
		return OrderReportSchema
	case GSTReportSchema.Name:
		return GSTReportSchema
	default:
		return nil
	}
}
