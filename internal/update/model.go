package update

import (
	"time"

	"gorm.io/gorm"
)

// Update is a dashboard announcement. Read-mostly: agents see them, the
// back office writes them.
type Update struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Message  string    `gorm:"size:4000;not null" json:"message"`
	Type     string    `gorm:"size:50;not null;default:'announcement';index" json:"type"`
	Date     time.Time `gorm:"not null" json:"date"`
	Link     string    `gorm:"size:1000" json:"link"`
	LinkText string    `gorm:"size:255" json:"linkText"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Update{})
}
