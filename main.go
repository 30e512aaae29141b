package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/energy-billing/invoice-reader/config"
	"github.com/energy-billing/invoice-reader/handler"
	"github.com/energy-billing/invoice-reader/service"
	"github.com/energy-billing/invoice-reader/utils"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize extraction pipeline
	pdfProcessor := service.NewPDFProcessor(cfg.PDF.Validate, logger)
	parser := utils.NewInvoiceParser(cfg.Layout, logger)
	invoiceService := service.NewInvoiceService(pdfProcessor, parser, cfg.PDF.Password, logger)
	exportService := service.NewExportService(logger)
	uploadStore := service.NewUploadStore(cfg.Upload.Dir, cfg.Upload.MaxBytes(), logger)

	// Initialize handler layer
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, exportService, uploadStore, logger)
	router := handler.NewRouter(invoiceHandler, cfg.Server.MaxMultipartMemoryMB<<20)

	logger.Info("starting invoice reader", "port", cfg.Server.Port, "upload_dir", cfg.Upload.Dir)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
