package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer placing sales orders. Only the name is required;
// contact fields stay nil when the form leaves them blank.
type Client struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone         *string        `gorm:"type:varchar(50)" json:"phone"`
	Email         *string        `gorm:"type:varchar(255)" json:"email"`
	Address       *string        `gorm:"type:text" json:"address"`
	ContactPerson *string        `gorm:"type:varchar(255)" json:"contact_person"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Supplier is a vendor the business purchases stock from.
type Supplier struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone         *string        `gorm:"type:varchar(50)" json:"phone"`
	Email         *string        `gorm:"type:varchar(255)" json:"email"`
	Address       *string        `gorm:"type:text" json:"address"`
	ContactPerson *string        `gorm:"type:varchar(255)" json:"contact_person"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
