package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/foodorder/go-gin-services/internal/app/menuapi"
)

func main() {
	_ = godotenv.Load()
	if err := menuapi.Run(context.Background()); err != nil {
		log.Fatalf("menu API failed: %v", err)
	}
}
