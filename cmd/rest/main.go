package main

import (
	"context"
	"log"

	"ai-modelgen-be/internal/bootstrap"
	"ai-modelgen-be/internal/config"
	"ai-modelgen-be/internal/server"
	"ai-modelgen-be/internal/tracer"
	"ai-modelgen-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Poll Worker...")
		if err := container.ConsumerService.Run(context.Background()); err != nil {
			log.Printf("Background Poll Worker Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
