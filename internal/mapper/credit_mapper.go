package mapper

import (
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/model"

	"gorm.io/datatypes"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) ToHeadEntity(c *model.UserCredits) *entity.UserCredits {
	if c == nil {
		return nil
	}
	return &entity.UserCredits{
		Id:             c.Id,
		UserId:         c.UserId,
		CurrentCredits: c.CurrentCredits,
		TotalEarned:    c.TotalEarned,
		TotalSpent:     c.TotalSpent,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *CreditMapper) ToHeadModel(c *entity.UserCredits) *model.UserCredits {
	if c == nil {
		return nil
	}
	return &model.UserCredits{
		Id:             c.Id,
		UserId:         c.UserId,
		CurrentCredits: c.CurrentCredits,
		TotalEarned:    c.TotalEarned,
		TotalSpent:     c.TotalSpent,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *CreditMapper) ToTransactionEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:            t.Id,
		UserId:        t.UserId,
		ServiceTypeId: t.ServiceTypeId,
		Amount:        t.Amount,
		Type:          entity.TransactionType(t.Type),
		Description:   t.Description,
		BalanceAfter:  t.BalanceAfter,
		Metadata:      map[string]interface{}(t.Metadata),
		CreatedAt:     t.CreatedAt,
	}
}

func (m *CreditMapper) ToTransactionEntities(ts []*model.CreditTransaction) []*entity.CreditTransaction {
	entities := make([]*entity.CreditTransaction, 0, len(ts))
	for _, t := range ts {
		entities = append(entities, m.ToTransactionEntity(t))
	}
	return entities
}

func (m *CreditMapper) ToTransactionModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:            t.Id,
		UserId:        t.UserId,
		ServiceTypeId: t.ServiceTypeId,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Description:   t.Description,
		BalanceAfter:  t.BalanceAfter,
		Metadata:      datatypes.JSONMap(t.Metadata),
		CreatedAt:     t.CreatedAt,
	}
}
