package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products for the catalog screens
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Product represents an item in the inventory.
// Price is the purchase cost; SellingPrice, when set, is what clients are charged.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Category     *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price        float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	SellingPrice *float64       `gorm:"type:decimal(12,2)" json:"selling_price"`
	Stock        int            `gorm:"type:int;default:0;not null" json:"stock"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// SalePrice returns the price charged on client orders: the selling price
// when one is set, the purchase cost otherwise.
func (p Product) SalePrice() float64 {
	if p.SellingPrice != nil {
		return *p.SellingPrice
	}
	return p.Price
}
