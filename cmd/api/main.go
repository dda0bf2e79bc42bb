package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"finalis_engine/pkg/api/deal"
	"finalis_engine/pkg/config"
	"finalis_engine/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/engine.yaml")
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Optional processed-deal audit store
	var repo store.DealRepository
	if cfg.Persistence.Enabled {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Persistence disabled: %v\n", err)
		} else {
			repo = store.NewDealRepo()
			defer store.Close()
			fmt.Println("[STORE] Processed-deal audit store connected")
		}
	}

	handler := deal.NewHandler(repo, cfg.Environment)

	http.HandleFunc("/", handler.HandleInfo)
	http.HandleFunc("/health", handler.HandleHealth)
	http.HandleFunc("/process_deal", handler.HandleProcessDeal)
	// Legacy alias kept for older integrations
	http.HandleFunc("/process", handler.HandleProcessDeal)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s (env: %s)...\n", addr, cfg.Environment)
	fmt.Println("  - GET  /            (API info)")
	fmt.Println("  - GET  /health")
	fmt.Println("  - POST /process_deal")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
