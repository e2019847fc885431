package main

import (
	"context"
	"log"

	"codecomp/internal/app/bootstrap"
)

// Bot process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server; Slack events and actions arrive there.
func main() {
	log.Println("codecomp bot starting")
	app, err := bootstrap.BuildBot()
	if err != nil {
		log.Fatalf("bootstrap bot failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("bot shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("codecomp bot stopped with error: %v", err)
	}
}
