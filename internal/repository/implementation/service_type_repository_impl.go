package implementation

import (
	"context"
	"errors"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/mapper"
	"ai-modelgen-be/internal/model"
	"ai-modelgen-be/internal/repository/contract"
	"ai-modelgen-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ServiceTypeMapper
}

func NewServiceTypeRepository(db *gorm.DB) contract.ServiceTypeRepository {
	return &ServiceTypeRepositoryImpl{
		db:     db,
		mapper: mapper.NewServiceTypeMapper(),
	}
}

func (r *ServiceTypeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ServiceTypeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error) {
	var st model.ServiceType
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&st), nil
}

func (r *ServiceTypeRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	return r.FindOne(ctx, specification.Filter("name", name))
}

func (r *ServiceTypeRepositoryImpl) FindAllActive(ctx context.Context) ([]*entity.ServiceType, error) {
	var sts []*model.ServiceType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("credit_cost ASC").
		Find(&sts).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(sts), nil
}

func (r *ServiceTypeRepositoryImpl) UpsertByName(ctx context.Context, serviceType *entity.ServiceType) error {
	modelST := r.mapper.ToModel(serviceType)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "credit_cost", "is_active", "updated_at"}),
	}).Create(modelST).Error
	if err != nil {
		return err
	}
	*serviceType = *r.mapper.ToEntity(modelST)
	return nil
}
