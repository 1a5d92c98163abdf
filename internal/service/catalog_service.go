package service

import (
	"context"
	"fmt"
	"time"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

// ICatalogService resolves service names to their credit cost. The catalog
// changes only at deploy time (cmd/seed), so costs are cached aggressively.
type ICatalogService interface {
	Cost(ctx context.Context, serviceName string) (int, error)
	ListServiceTypes(ctx context.Context) ([]*entity.ServiceType, error)
	Warm(ctx context.Context) error
}

type CatalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ICatalogService {
	return &CatalogService{
		uowFactory: uowFactory,
		cache:      gocache.New(24*time.Hour, 1*time.Hour),
		logger:     logger,
	}
}

// Cost returns the credit cost of an active service. Unknown or inactive
// names map to a 400; the caller never gets a price for a dead service.
func (s *CatalogService) Cost(ctx context.Context, serviceName string) (int, error) {
	if cached, found := s.cache.Get(serviceName); found {
		return cached.(int), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	serviceType, err := uow.ServiceTypeRepository().FindByName(ctx, serviceName)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve service type: %w", err)
	}
	if serviceType == nil || !serviceType.IsActive {
		return 0, serverutils.BadRequest(fmt.Sprintf("unknown service type: %s", serviceName))
	}

	s.cache.Set(serviceName, serviceType.CreditCost, gocache.DefaultExpiration)
	return serviceType.CreditCost, nil
}

func (s *CatalogService) ListServiceTypes(ctx context.Context) ([]*entity.ServiceType, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ServiceTypeRepository().FindAllActive(ctx)
}

// Warm preloads every active service cost at bootstrap so the first paid
// request does not pay a catalog read.
func (s *CatalogService) Warm(ctx context.Context) error {
	serviceTypes, err := s.ListServiceTypes(ctx)
	if err != nil {
		return err
	}
	for _, st := range serviceTypes {
		s.cache.Set(st.Name, st.CreditCost, gocache.DefaultExpiration)
	}
	s.logger.Info("CatalogService", "Service catalog warmed", map[string]interface{}{
		"services": len(serviceTypes),
	})
	return nil
}
