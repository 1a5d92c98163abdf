package mapper

import (
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/model"
)

type GeneratedModelMapper struct {
	userMapper *UserMapper
}

func NewGeneratedModelMapper() *GeneratedModelMapper {
	return &GeneratedModelMapper{userMapper: NewUserMapper()}
}

func (m *GeneratedModelMapper) ToEntity(g *model.GeneratedModel) *entity.GeneratedModel {
	if g == nil {
		return nil
	}
	return &entity.GeneratedModel{
		Id:           g.Id,
		UserId:       g.UserId,
		ServiceType:  g.ServiceType,
		ModelUrl:     g.ModelUrl,
		ThumbnailUrl: g.ThumbnailUrl,
		Prompt:       g.Prompt,
		CreditsCost:  g.CreditsCost,
		Status:       entity.ModelStatus(g.Status),
		Rating:       g.Rating,
		Comment:      g.Comment,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
		Owner:        m.userMapper.ToEntity(g.User),
	}
}

func (m *GeneratedModelMapper) ToEntities(gs []*model.GeneratedModel) []*entity.GeneratedModel {
	entities := make([]*entity.GeneratedModel, 0, len(gs))
	for _, g := range gs {
		entities = append(entities, m.ToEntity(g))
	}
	return entities
}

func (m *GeneratedModelMapper) ToModel(g *entity.GeneratedModel) *model.GeneratedModel {
	if g == nil {
		return nil
	}
	return &model.GeneratedModel{
		Id:           g.Id,
		UserId:       g.UserId,
		ServiceType:  g.ServiceType,
		ModelUrl:     g.ModelUrl,
		ThumbnailUrl: g.ThumbnailUrl,
		Prompt:       g.Prompt,
		CreditsCost:  g.CreditsCost,
		Status:       string(g.Status),
		Rating:       g.Rating,
		Comment:      g.Comment,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
