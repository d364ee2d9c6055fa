package lead

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(l *Lead) error {
	return r.DB.Create(l).Error
}

func (r *Repository) FindAll(agentID *uint, status string) ([]Lead, error) {
	var list []Lead
	q := r.DB.Order("id")
	if agentID != nil {
		q = q.Where("agent_id = ?", *agentID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Lead, error) {
	var l Lead
	if err := r.DB.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Save(l *Lead) error {
	return r.DB.Save(l).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Lead{}, id).Error
}
