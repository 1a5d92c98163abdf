package specification

import "gorm.io/gorm"

// OwnedBy filters ledger rows and model records by their owning user.
type OwnedBy struct {
	UserID string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByTransactionType filters credit transactions by type (EARN, SPEND, ...).
type ByTransactionType struct {
	Type string
}

func (s ByTransactionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// ByDescription filters by the exact description text.
type ByDescription struct {
	Description string
}

func (s ByDescription) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("description = ?", s.Description)
}

// NewestFirst orders by creation time descending, the ledger history order.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
