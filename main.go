package main

import (
	"fmt"
	"log"

	"github.com/Felmyb/SistemaSKC/configs"
	"github.com/Felmyb/SistemaSKC/middlewares"
	"github.com/Felmyb/SistemaSKC/routes"
	"github.com/Felmyb/SistemaSKC/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(); err != nil {
			log.Fatalf("seed demo failed: %v", err)
		}
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	// Kitchen display feed
	hub := ws.NewKitchenHub()
	go hub.Run()

	routes.RegisterRoutes(r, db, cfg, hub)

	port := cfg.Port
	log.Printf("listening on :%s", port)
	if err := r.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
