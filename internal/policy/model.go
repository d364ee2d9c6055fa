package policy

import (
	"time"

	"gorm.io/gorm"
)

// Statuses a policy can carry. Transitions are not enforced beyond the expiry
// sweep; the natural ordering is pending -> active -> lapsed/cancelled/expired.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusLapsed    = "lapsed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Policy is an issued insurance policy. Client, lead and agent links are
// references, not ownership: deleting any of them clears the link here.
type Policy struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PolicyNumber string `gorm:"size:100;not null;uniqueIndex:idx_policy_carrier" json:"policyNumber"`
	Carrier      string `gorm:"size:255;not null;uniqueIndex:idx_policy_carrier" json:"carrier"`
	PolicyType   string `gorm:"size:100;not null" json:"policyType"`

	// Money fields keep the decimal display string the office entered.
	FaceAmount       string `gorm:"size:50;not null" json:"faceAmount"`
	PremiumAmount    string `gorm:"size:50;not null" json:"premiumAmount"`
	PremiumFrequency string `gorm:"size:20;not null" json:"premiumFrequency"`

	IssueDate  time.Time  `gorm:"not null" json:"issueDate"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Status     string     `gorm:"size:50;not null;index" json:"status"`

	ClientID *uint `gorm:"index" json:"clientId"`
	LeadID   *uint `gorm:"index" json:"leadId"`
	AgentID  *uint `gorm:"index" json:"agentId"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Policy{})
}
