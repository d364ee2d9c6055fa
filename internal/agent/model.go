package agent

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCommissionPercentage is applied when an agent is created without an
// explicit percentage. Configuration, not derived business logic.
const DefaultCommissionPercentage = "70.00"

// PaymentMethodDirectDeposit is the only supported payout method.
const PaymentMethodDirectDeposit = "direct_deposit"

// Agent is a producing agent. An agent may report to an upline agent; the
// upline chain must never form a cycle.
type Agent struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	FirstName     string `gorm:"size:100;not null" json:"firstName"`
	LastName      string `gorm:"size:100;not null" json:"lastName"`
	Email         string `gorm:"size:255" json:"email"`
	Phone         string `gorm:"size:50" json:"phone"`
	LicenseNumber string `gorm:"size:100" json:"licenseNumber"`
	LicenseState  string `gorm:"size:10" json:"licenseState"`

	CommissionPercentage string `gorm:"size:20;not null;default:'70.00'" json:"commissionPercentage"`
	OverridePercentage   string `gorm:"size:20" json:"overridePercentage"`

	UplineAgentID *uint `gorm:"index" json:"uplineAgentId"`

	// Banking details stay empty until the agent completes payout setup.
	BankName      string `gorm:"size:255" json:"bankName"`
	AccountType   string `gorm:"size:20" json:"accountType"`
	AccountNumber string `gorm:"size:50" json:"accountNumber"`
	RoutingNumber string `gorm:"size:50" json:"routingNumber"`
	PaymentMethod string `gorm:"size:50;not null;default:'direct_deposit'" json:"paymentMethod"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate creates the agents table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Agent{})
}
