package lead

import (
	"time"

	"gorm.io/gorm"
)

// Lead is a prospect that has not been converted into a client yet.
type Lead struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Source    string `gorm:"size:100" json:"source"`
	Status    string `gorm:"size:50;not null;default:'new';index" json:"status"`
	Notes     string `gorm:"size:2000" json:"notes"`

	AgentID *uint `gorm:"index" json:"agentId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lead{})
}
