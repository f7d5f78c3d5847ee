package main

import (
	"fmt"
	"log"

	"github.com/bitukupraveen/multi-billing-sub000/internal/config"
	"github.com/bitukupraveen/multi-billing-sub000/internal/email/noop"
	"github.com/bitukupraveen/multi-billing-sub000/internal/email/ses"
	"github.com/bitukupraveen/multi-billing-sub000/internal/handler"
	"github.com/bitukupraveen/multi-billing-sub000/internal/marketplace/flipkart"
	"github.com/bitukupraveen/multi-billing-sub000/internal/marketplace/shopify"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
	"github.com/bitukupraveen/multi-billing-sub000/internal/repository/postgres"
	"github.com/bitukupraveen/multi-billing-sub000/internal/router"
	"github.com/bitukupraveen/multi-billing-sub000/internal/service"
	s3storage "github.com/bitukupraveen/multi-billing-sub000/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	counterRepo := postgres.NewCounterRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)
	productRepo := postgres.NewProductRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	settlementRepo := postgres.NewSettlementRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize marketplace clients
	flipkartClient := flipkart.NewClient(&cfg.Flipkart)
	shopifyClient := shopify.NewClient(&cfg.Shopify)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo, counterRepo, customerRepo, emailSender)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, counterRepo, vendorRepo)
	catalogSvc := service.NewCatalogService(productRepo, customerRepo, vendorRepo)
	ingestSvc := service.NewIngestService(fileRepo, settlementRepo, s3Client, &cfg.S3, &cfg.Ingest)
	reconSvc := service.NewReconService(orderRepo, settlementRepo)
	syncSvc := service.NewSyncService(orderRepo, flipkartClient, shopifyClient)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	purchaseH := handler.NewPurchaseHandler(purchaseSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	settlementH := handler.NewSettlementHandler(ingestSvc)
	reconH := handler.NewReconHandler(reconSvc)
	syncH := handler.NewSyncHandler(syncSvc)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, invoiceH, purchaseH, catalogH, settlementH, reconH, syncH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
