package main

import (
	"fmt"
	"log"
	"net/http"

	"eduagri-backend/internal/api"
	"eduagri-backend/internal/config"
	"eduagri-backend/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Init(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	handler := api.NewRouter(db, cfg)

	addr := cfg.Addr()
	fmt.Printf("EduAgri server running on http://%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
