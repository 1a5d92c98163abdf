package mapper

import (
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/model"
)

type ServiceTypeMapper struct{}

func NewServiceTypeMapper() *ServiceTypeMapper {
	return &ServiceTypeMapper{}
}

func (m *ServiceTypeMapper) ToEntity(s *model.ServiceType) *entity.ServiceType {
	if s == nil {
		return nil
	}
	return &entity.ServiceType{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		CreditCost:  s.CreditCost,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *ServiceTypeMapper) ToEntities(ss []*model.ServiceType) []*entity.ServiceType {
	entities := make([]*entity.ServiceType, 0, len(ss))
	for _, s := range ss {
		entities = append(entities, m.ToEntity(s))
	}
	return entities
}

func (m *ServiceTypeMapper) ToModel(s *entity.ServiceType) *model.ServiceType {
	if s == nil {
		return nil
	}
	return &model.ServiceType{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		CreditCost:  s.CreditCost,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
