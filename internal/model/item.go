package model

import (
	"strings"

	"gorm.io/gorm"
)

// Item is a catalog entry keyed by an externally supplied id.
type Item struct {
	ItemID   int64   `json:"item_id" gorm:"primaryKey;autoIncrement:false"`
	Name     string  `json:"name" gorm:"size:255;not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Category string  `json:"category" gorm:"size:255;not null"`
	Price    float64 `json:"price" gorm:"not null"`
}

// Normalize trims the text fields.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
}

// BeforeSave normalizes the item before it is written.
func (i *Item) BeforeSave(tx *gorm.DB) error {
	i.Normalize()
	return nil
}
