package commission

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsulates database access for commissions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Commission) error {
	return r.DB.Create(c).Error
}

type Filter struct {
	BrokerID *uint
	ClientID *uint
	Status   string
	Type     string
}

func (r *Repository) FindAll(f Filter) ([]Commission, error) {
	var list []Commission
	q := r.DB.Order("id")
	if f.BrokerID != nil {
		q = q.Where("broker_id = ?", *f.BrokerID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Commission, error) {
	var c Commission
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindForBrokerInWindow returns a broker's commissions whose effective date
// (payment date if set, else policy start) falls in [start, end).
func (r *Repository) FindForBrokerInWindow(brokerID uint, start, end time.Time) ([]Commission, error) {
	var list []Commission
	err := r.DB.
		Where("broker_id = ?", brokerID).
		Where("COALESCE(payment_date, policy_start_date) >= ? AND COALESCE(payment_date, policy_start_date) < ?", start, end).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *Repository) Save(c *Commission) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Commission{}, id).Error
}
