package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pantryscan/backend/config"
	httpDelivery "github.com/pantryscan/backend/internal/delivery/http"
	"github.com/pantryscan/backend/internal/domain"
	"github.com/pantryscan/backend/internal/infrastructure/rakuten"
	"github.com/pantryscan/backend/internal/infrastructure/storage"
	"github.com/pantryscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PantryScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage backend: %s", cfg.Storage.Backend)

	// Initialize infrastructure dependencies
	var kv domain.KeyValueStore
	switch cfg.Storage.Backend {
	case "sqlite":
		store, err := storage.OpenSQLiteStore(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer store.Close()
		kv = store
		log.Printf("Storage path: %s", cfg.Storage.Path)
	default:
		kv = storage.NewMemoryStore()
		log.Printf("WARNING: memory storage selected - inventory is lost on restart")
	}

	rakutenClient := rakuten.NewClient(cfg.Rakuten.AppID, cfg.Rakuten.BaseURL)

	// Enable debug mode in development environment
	debug := cfg.Server.Environment == "development"
	if debug {
		rakutenClient.SetDebug(true)
		log.Printf("Rakuten client debug mode enabled")
	}

	log.Printf("Rakuten API configured: %s (app id: %s...)", cfg.Rakuten.BaseURL, cfg.Rakuten.AppID[:min(8, len(cfg.Rakuten.AppID))])

	// Initialize usecase layer
	inventory := usecase.NewInventoryService(kv, cfg.Storage.Key)
	if err := inventory.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load inventory: %v", err)
	}
	log.Printf("Inventory loaded: %d items", len(inventory.Items()))

	resolver := usecase.NewProductResolver(rakutenClient, usecase.NewNormalizer(debug))
	scans := usecase.NewScanManager(resolver, cfg.Scan.SessionTTL)
	log.Printf("Scan session TTL: %s", cfg.Scan.SessionTTL)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(inventory, scans)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
