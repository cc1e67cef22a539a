package persistence

import (
	"time"
)

// ComplexModel represents the complexes table
type ComplexModel struct {
	ID           string    `gorm:"column:id;primaryKey;not null"`
	Name         string    `gorm:"column:name;not null;index"`
	GameID       string    `gorm:"column:game_id;not null"`
	TemplateCode string    `gorm:"column:template_code;type:text"`
	Document     string    `gorm:"column:document;type:text;not null"` // JSON complex document
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (ComplexModel) TableName() string {
	return "complexes"
}
