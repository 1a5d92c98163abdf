package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-modelgen-be/internal/config"
	"ai-modelgen-be/internal/controller"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/mailer"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/internal/service"
	"ai-modelgen-be/pkg/meshy"

	pktNats "ai-modelgen-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CreditController   controller.ICreditController
	GenerateController controller.IGenerateController
	ModelController    controller.IModelController
	AdminController    controller.IAdminController
	TopupController    controller.ITopupController

	// Background Services (Exposed for main.go to run)
	ConsumerService *service.ConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pollLogger := logger.NewIsolatedLogger("poll_worker.log")

	emailService := mailer.NewEmailService(cfg.SMTP)

	// 2. Infrastructure
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	redisOpts, err := redis.ParseURL(cfg.App.RedisURL)
	var redisClient *redis.Client
	if err != nil {
		log.Printf("[WARN] Invalid Redis URL, status cache disabled: %v", err)
	} else {
		redisClient = redis.NewClient(redisOpts)
	}

	meshyClient := meshy.NewClient(cfg.Meshy.BaseURL, cfg.Meshy.APIKey)

	// 3. Services
	publisherService := service.NewPublisherService(sysLogger)
	catalogService := service.NewCatalogService(uowFactory, sysLogger)
	creditService := service.NewCreditService(uowFactory, eventPublisher, emailService, sysLogger, cfg.Credits.SignupBonus)
	modelService := service.NewModelService(uowFactory, sysLogger)
	generationService := service.NewGenerationService(
		uowFactory,
		meshyClient,
		catalogService,
		creditService,
		publisherService,
		eventPublisher,
		redisClient,
		sysLogger,
	)
	topupService := service.NewTopupService(uowFactory, creditService, cfg.Midtrans, sysLogger)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	consumerService := service.NewConsumerService(uowFactory, publisherService, meshyClient, eventPublisher, pollLogger)

	// Warm the catalog cache; a failure just means cold first reads.
	warmCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := catalogService.Warm(warmCtx); err != nil {
		log.Printf("[WARN] Failed to warm service catalog: %v", err)
	}

	// 4. Controllers
	return &Container{
		CreditController:   controller.NewCreditController(creditService),
		GenerateController: controller.NewGenerateController(generationService),
		ModelController:    controller.NewModelController(modelService),
		AdminController:    controller.NewAdminController(adminService),
		TopupController:    controller.NewTopupController(topupService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
