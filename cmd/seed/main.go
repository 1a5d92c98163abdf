package main

import (
	"context"
	"log"
	"os"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds the service catalog and the credit top-up packages. Safe to run on
// every deploy; rows are upserted by name.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	serviceTypes := []*entity.ServiceType{
		{
			Name:        entity.ServiceTextTo3DPreview,
			Description: "Text to 3D model preview generation (untextured mesh)",
			CreditCost:  5,
			IsActive:    true,
		},
		{
			Name:        entity.ServiceTextTo3DOptimized,
			Description: "Text to 3D optimized generation (textured, PBR enabled)",
			CreditCost:  10,
			IsActive:    true,
		},
		{
			Name:        entity.ServiceImageGeneration,
			Description: "Image to 3D model generation",
			CreditCost:  5,
			IsActive:    true,
		},
	}
	for _, st := range serviceTypes {
		if err := uow.ServiceTypeRepository().UpsertByName(ctx, st); err != nil {
			log.Fatalf("Error: Failed to seed service type %s: %v", st.Name, err)
		}
		log.Printf("Seeded service type: %s (%d credits)", st.Name, st.CreditCost)
	}

	packages := []*entity.CreditPackage{
		{Name: "Starter", Credits: 50, Price: 25000, IsActive: true, SortOrder: 1},
		{Name: "Creator", Credits: 150, Price: 60000, IsActive: true, SortOrder: 2},
		{Name: "Studio", Credits: 500, Price: 175000, IsActive: true, SortOrder: 3},
	}
	for _, pkg := range packages {
		if err := uow.TopupRepository().UpsertPackage(ctx, pkg); err != nil {
			log.Fatalf("Error: Failed to seed package %s: %v", pkg.Name, err)
		}
		log.Printf("Seeded credit package: %s (%d credits)", pkg.Name, pkg.Credits)
	}

	log.Println("Seeding complete.")
}
