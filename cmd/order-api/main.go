package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/foodorder/go-gin-services/internal/app/orderapi"
)

func main() {
	_ = godotenv.Load()
	if err := orderapi.Run(context.Background()); err != nil {
		log.Fatalf("order API failed: %v", err)
	}
}
