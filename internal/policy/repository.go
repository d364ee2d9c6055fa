package policy

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Policy) error {
	return r.DB.Create(p).Error
}

// Filter narrows List results. Nil/empty fields are ignored.
type Filter struct {
	AgentID  *uint
	ClientID *uint
	Status   string
}

func (r *Repository) FindAll(f Filter) ([]Policy, error) {
	var list []Policy
	q := r.DB.Order("id")
	if f.AgentID != nil {
		q = q.Where("agent_id = ?", *f.AgentID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Policy, error) {
	var p Policy
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Save(p *Policy) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Policy{}, id).Error
}

// ExpireOverdue flips active policies whose expiry date has passed to
// expired and returns how many rows changed. Used by the nightly sweep.
func (r *Repository) ExpireOverdue(now time.Time) (int64, error) {
	res := r.DB.Model(&Policy{}).
		Where("status = ?", StatusActive).
		Where("expiry_date IS NOT NULL AND expiry_date < ?", now).
		Update("status", StatusExpired)
	return res.RowsAffected, res.Error
}
