package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"invoice-admin/internal/config"
	"invoice-admin/internal/handler"
	"invoice-admin/internal/repository"
	"invoice-admin/internal/service"
	"invoice-admin/internal/viewcache"
	"invoice-admin/pkg/db"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbPool, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	invoiceRepo := repository.NewInvoiceRepository(dbPool)
	customerRepo := repository.NewCustomerRepository(dbPool)

	views := viewcache.New()
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, views, cfg.UpdateDelay)

	dashboardHandler := handler.NewDashboardHandler(invoiceService, views)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	dashboardHandler.RegisterRoutes(router)

	log.Printf("Dashboard API listening on port %s...", cfg.AppPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
