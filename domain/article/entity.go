package article

import (
	"time"
)

// Article represents an inventory article in the catalog.
type Article struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"index;size:100;not null"`
	Description string     `gorm:"size:500"`
	Price       float64    `gorm:"not null"`
	Stock       int        `gorm:"not null;default:0"`
	Category    string     `gorm:"index;size:20"`
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// TableName returns the table name for the Article entity.
func (Article) TableName() string {
	return "articles"
}
