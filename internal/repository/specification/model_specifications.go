package specification

import "gorm.io/gorm"

// ByStatus filters generated models by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// Completed narrows to finished models that actually carry a result.
// Similarity search and reuse only ever look at these.
type Completed struct{}

func (s Completed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "COMPLETED").
		Where("model_url IS NOT NULL").
		Where("prompt IS NOT NULL")
}

// ByModelUrlAndPrompt matches the reuse duplicate guard pair.
type ByModelUrlAndPrompt struct {
	ModelUrl string
	Prompt   string
}

func (s ByModelUrlAndPrompt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("model_url = ?", s.ModelUrl).Where("prompt = ?", s.Prompt)
}

// Rated narrows to models that have a rating attached.
type Rated struct{}

func (s Rated) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rating IS NOT NULL")
}
