package commission

import (
	"time"

	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/aggregate"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Commission is a commission entry tied to a policy. Amount keeps the raw
// display string as entered ("$1,234.56" or "1234.56"); aggregation parses it
// leniently and reports records that do not parse.
type Commission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255" json:"name"`
	PolicyNumber string `gorm:"size:100;not null;index" json:"policyNumber"`
	ClientID     uint   `gorm:"not null;index" json:"clientId"`
	BrokerID     uint   `gorm:"not null;index" json:"brokerId"`

	Amount string `gorm:"size:50;not null" json:"amount"`
	Status string `gorm:"size:50;not null;default:'pending';index" json:"status"`
	Type   string `gorm:"size:50;not null;default:'initial'" json:"type"`

	PolicyStartDate time.Time  `gorm:"not null" json:"policyStartDate"`
	PolicyEndDate   *time.Time `json:"policyEndDate"`
	PaymentDate     *time.Time `json:"paymentDate"`

	Carrier    string `gorm:"size:255" json:"carrier"`
	PolicyType string `gorm:"size:100" json:"policyType"`
	Notes      string `gorm:"size:2000" json:"notes"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Commission{})
}

// ToRecords maps commissions into the aggregator's view of them.
func ToRecords(list []Commission) []aggregate.Record {
	records := make([]aggregate.Record, 0, len(list))
	for _, c := range list {
		records = append(records, aggregate.Record{
			ID:              c.ID,
			Amount:          c.Amount,
			Status:          c.Status,
			Type:            c.Type,
			PolicyType:      c.PolicyType,
			PolicyStartDate: c.PolicyStartDate,
			PaymentDate:     c.PaymentDate,
		})
	}
	return records
}
