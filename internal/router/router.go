package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bitukupraveen/multi-billing-sub000/internal/handler"
	"github.com/bitukupraveen/multi-billing-sub000/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	healthH *handler.HealthHandler,
	invoiceH *handler.InvoiceHandler,
	purchaseH *handler.PurchaseHandler,
	catalogH *handler.CatalogHandler,
	settlementH *handler.SettlementHandler,
	reconH *handler.ReconHandler,
	syncH *handler.SyncHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)

	purchases := v1.Group("/purchases")
	purchases.POST("", purchaseH.Create)
	purchases.GET("", purchaseH.List)
	purchases.GET("/:id", purchaseH.GetByID)

	products := v1.Group("/products")
	products.POST("", catalogH.CreateProduct)
	products.GET("", catalogH.ListProducts)
	products.GET("/:id", catalogH.GetProduct)
	products.PUT("/:id", catalogH.UpdateProduct)
	products.DELETE("/:id", catalogH.DeleteProduct)

	customers := v1.Group("/customers")
	customers.POST("", catalogH.CreateCustomer)
	customers.GET("", catalogH.ListCustomers)
	customers.GET("/:id", catalogH.GetCustomer)
	customers.PUT("/:id", catalogH.UpdateCustomer)
	customers.DELETE("/:id", catalogH.DeleteCustomer)

	vendors := v1.Group("/vendors")
	vendors.POST("", catalogH.CreateVendor)
	vendors.GET("", catalogH.ListVendors)
	vendors.GET("/:id", catalogH.GetVendor)
	vendors.PUT("/:id", catalogH.UpdateVendor)
	vendors.DELETE("/:id", catalogH.DeleteVendor)

	settlements := v1.Group("/settlements")
	settlements.POST("/upload", settlementH.Upload)
	settlements.GET("", settlementH.ListFiles)
	settlements.GET("/:id", settlementH.GetFile)
	settlements.GET("/:id/rows", settlementH.ListRows)
	settlements.POST("/:id/ingest", settlementH.Ingest)

	recon := v1.Group("/reconciliation")
	recon.GET("", reconH.Reconcile)
	recon.GET("/export", reconH.ExportCSV)

	sync := v1.Group("/sync")
	sync.GET("/channels", syncH.Channels)
	sync.POST("/:channel", syncH.Sync)

	return r
}
