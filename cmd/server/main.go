package main

import (
	"fmt"
	"log"
	"os"

	"invoiceqc/internal/config"
	"invoiceqc/internal/extract"
	"invoiceqc/internal/handler"
	"invoiceqc/internal/router"
	"invoiceqc/internal/service"
	"invoiceqc/internal/validator"
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

	logger := log.New(os.Stderr, "", log.LstdFlags)

	// Initialize the extraction and validation pipeline
	extractor := extract.New(logger)
	engine := validator.NewDefaultEngine(logger, cfg.QC.ToleranceDecimal(), cfg.QC.MaxAgeDays)
	qcSvc := service.NewQCService(extractor, engine, logger)

	// Initialize handlers
	qcH := handler.NewQCHandler(qcSvc, cfg.Upload.MaxFileSizeMB)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, logger, qcH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
