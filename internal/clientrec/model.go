// Package clientrec holds the policyholder ("client") records. The package is
// not named client to keep call sites that also import the record-store
// client readable.
package clientrec

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"firstName"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	Email       string     `gorm:"size:255" json:"email"`
	Phone       string     `gorm:"size:50" json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     string     `gorm:"size:500" json:"address"`

	// Servicing agent; cleared, not cascaded, when the agent is deleted.
	AgentID *uint `gorm:"index" json:"agentId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Client{})
}
