package domain

// Channel identifies the sales channel an invoice or order belongs to.
// Each (document type, channel) pair owns its own counter namespace.
type Channel string

const (
	ChannelOffline  Channel = "offline"
	ChannelFlipkart Channel = "flipkart"
	ChannelShopify  Channel = "shopify"
)

// ValidChannels lists the accepted channel values.
var ValidChannels = map[Channel]bool{
	ChannelOffline:  true,
	ChannelFlipkart: true,
	ChannelShopify:  true,
}

// ReportType identifies which settlement report family a spreadsheet belongs
// to. The two families share order identifiers but are otherwise disjoint.
type ReportType string

const (
	ReportTypeOrder ReportType = "order_report"
	ReportTypeGST   ReportType = "gst_report"
)

// ValidReportTypes lists the accepted report type values.
var ValidReportTypes = map[ReportType]bool{
	ReportTypeOrder: true,
	ReportTypeGST:   true,
}

// FileType represents the allowed settlement file types for upload.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"csv":  FileTypeCSV,
}

// AllowedContentTypes maps detected MIME content types back to FileType.
// xlsx files are zip containers, so application/zip is accepted.
var AllowedContentTypes = map[string]FileType{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FileTypeXLSX,
	"application/zip": FileTypeXLSX,
	"text/csv":        FileTypeCSV,
	"text/plain; charset=utf-8": FileTypeCSV,
}

// FileStatus represents the lifecycle of an uploaded settlement file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusIngested FileStatus = "ingested"
	FileStatusFailed   FileStatus = "failed"
)

// OrderStatus represents the lifecycle of a locally recorded order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCancelled OrderStatus = "cancelled"
)
