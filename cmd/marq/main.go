package main

import (
	"log"

	"github.com/marqlabs/marq/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ marq failed to start: %v", err)
	}
}
