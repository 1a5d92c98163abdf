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
)

type ModelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeneratedModelMapper
}

func NewModelRepository(db *gorm.DB) contract.ModelRepository {
	return &ModelRepositoryImpl{
		db:     db,
		mapper: mapper.NewGeneratedModelMapper(),
	}
}

func (r *ModelRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ModelRepositoryImpl) Create(ctx context.Context, m *entity.GeneratedModel) error {
	modelRow := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Create(modelRow).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(modelRow)
	return nil
}

func (r *ModelRepositoryImpl) Update(ctx context.Context, m *entity.GeneratedModel) error {
	modelRow := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Save(modelRow).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(modelRow)
	return nil
}

func (r *ModelRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GeneratedModel{}).Error
}

func (r *ModelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedModel, error) {
	var modelRow model.GeneratedModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&modelRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelRow), nil
}

func (r *ModelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error) {
	var rows []*model.GeneratedModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *ModelRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedModel{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateTerminalStatus only touches url/status fields, never rating or
// ownership, so replays from concurrent pollers are harmless.
func (r *ModelRepositoryImpl) UpdateTerminalStatus(ctx context.Context, taskId string, status entity.ModelStatus, modelUrl, thumbnailUrl *string) error {
	updates := map[string]interface{}{
		"status": string(status),
	}
	if modelUrl != nil {
		updates["model_url"] = *modelUrl
	}
	if thumbnailUrl != nil {
		updates["thumbnail_url"] = *thumbnailUrl
	}
	return r.db.WithContext(ctx).
		Model(&model.GeneratedModel{}).
		Where("id = ?", taskId).
		Updates(updates).Error
}

func (r *ModelRepositoryImpl) UpdateRating(ctx context.Context, id string, rating int, comment *string) error {
	return r.db.WithContext(ctx).
		Model(&model.GeneratedModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":  rating,
			"comment": comment,
		}).Error
}

func (r *ModelRepositoryImpl) FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error) {
	var rows []*model.GeneratedModel
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("User"), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *ModelRepositoryImpl) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.GeneratedModel{}).
		Where("rating IS NOT NULL").
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
