package implementation

import (
	"context"
	"errors"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/mapper"
	"ai-modelgen-be/internal/model"
	"ai-modelgen-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TopupMapper
}

func NewTopupRepository(db *gorm.DB) contract.TopupRepository {
	return &TopupRepositoryImpl{
		db:     db,
		mapper: mapper.NewTopupMapper(),
	}
}

func (r *TopupRepositoryImpl) FindActivePackages(ctx context.Context) ([]*entity.CreditPackage, error) {
	var pkgs []*model.CreditPackage
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToPackageEntities(pkgs), nil
}

func (r *TopupRepositoryImpl) FindPackage(ctx context.Context, id uuid.UUID) (*entity.CreditPackage, error) {
	var pkg model.CreditPackage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToPackageEntity(&pkg), nil
}

func (r *TopupRepositoryImpl) UpsertPackage(ctx context.Context, pkg *entity.CreditPackage) error {
	row := &model.CreditPackage{
		Id:        pkg.Id,
		Name:      pkg.Name,
		Credits:   pkg.Credits,
		Price:     pkg.Price,
		IsActive:  pkg.IsActive,
		SortOrder: pkg.SortOrder,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"credits", "price", "is_active", "sort_order", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return err
	}
	*pkg = *r.mapper.ToPackageEntity(row)
	return nil
}

func (r *TopupRepositoryImpl) CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error {
	row := r.mapper.ToPurchaseModel(purchase)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.ToPurchaseEntity(row)
	return nil
}

func (r *TopupRepositoryImpl) FindPurchaseByOrderId(ctx context.Context, orderId string) (*entity.CreditPurchase, error) {
	var row model.CreditPurchase
	err := r.db.WithContext(ctx).Where("order_id = ?", orderId).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToPurchaseEntity(&row), nil
}

func (r *TopupRepositoryImpl) UpdatePurchaseStatus(ctx context.Context, orderId, status string, midtransTransactionId *string) error {
	updates := map[string]interface{}{"status": status}
	if midtransTransactionId != nil {
		updates["midtrans_transaction_id"] = *midtransTransactionId
	}
	return r.db.WithContext(ctx).
		Model(&model.CreditPurchase{}).
		Where("order_id = ?", orderId).
		Updates(updates).Error
}
