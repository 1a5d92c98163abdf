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

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

func (r *CreditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditRepositoryImpl) FindHead(ctx context.Context, userId string) (*entity.UserCredits, error) {
	var head model.UserCredits
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&head).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToHeadEntity(&head), nil
}

func (r *CreditRepositoryImpl) FindHeadForUpdate(ctx context.Context, userId string) (*entity.UserCredits, error) {
	var head model.UserCredits
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).
		First(&head).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToHeadEntity(&head), nil
}

func (r *CreditRepositoryImpl) CreateHeadIfAbsent(ctx context.Context, head *entity.UserCredits) error {
	modelHead := r.mapper.ToHeadModel(head)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(modelHead).Error
	if err != nil {
		return err
	}
	*head = *r.mapper.ToHeadEntity(modelHead)
	return nil
}

func (r *CreditRepositoryImpl) UpdateHead(ctx context.Context, head *entity.UserCredits) error {
	return r.db.WithContext(ctx).
		Model(&model.UserCredits{}).
		Where("user_id = ?", head.UserId).
		Updates(map[string]interface{}{
			"current_credits": head.CurrentCredits,
			"total_earned":    head.TotalEarned,
			"total_spent":     head.TotalSpent,
		}).Error
}

func (r *CreditRepositoryImpl) AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error {
	modelTxn := r.mapper.ToTransactionModel(txn)
	if err := r.db.WithContext(ctx).Create(modelTxn).Error; err != nil {
		return err
	}
	*txn = *r.mapper.ToTransactionEntity(modelTxn)
	return nil
}

func (r *CreditRepositoryImpl) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var txns []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToTransactionEntities(txns), nil
}

func (r *CreditRepositoryImpl) CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CreditTransaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
