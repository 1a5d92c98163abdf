package mapper

import (
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/model"
)

type TopupMapper struct{}

func NewTopupMapper() *TopupMapper {
	return &TopupMapper{}
}

func (m *TopupMapper) ToPackageEntity(p *model.CreditPackage) *entity.CreditPackage {
	if p == nil {
		return nil
	}
	return &entity.CreditPackage{
		Id:        p.Id,
		Name:      p.Name,
		Credits:   p.Credits,
		Price:     p.Price,
		IsActive:  p.IsActive,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *TopupMapper) ToPackageEntities(ps []*model.CreditPackage) []*entity.CreditPackage {
	entities := make([]*entity.CreditPackage, 0, len(ps))
	for _, p := range ps {
		entities = append(entities, m.ToPackageEntity(p))
	}
	return entities
}

func (m *TopupMapper) ToPurchaseEntity(p *model.CreditPurchase) *entity.CreditPurchase {
	if p == nil {
		return nil
	}
	return &entity.CreditPurchase{
		Id:                    p.Id,
		OrderId:               p.OrderId,
		UserId:                p.UserId,
		PackageId:             p.PackageId,
		Credits:               p.Credits,
		GrossAmount:           p.GrossAmount,
		Status:                p.Status,
		MidtransTransactionId: p.MidtransTransactionId,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (m *TopupMapper) ToPurchaseModel(p *entity.CreditPurchase) *model.CreditPurchase {
	if p == nil {
		return nil
	}
	return &model.CreditPurchase{
		Id:                    p.Id,
		OrderId:               p.OrderId,
		UserId:                p.UserId,
		PackageId:             p.PackageId,
		Credits:               p.Credits,
		GrossAmount:           p.GrossAmount,
		Status:                p.Status,
		MidtransTransactionId: p.MidtransTransactionId,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
