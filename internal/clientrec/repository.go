package clientrec

import "gorm.io/gorm"

// Repository encapsulates database access for clients.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Client) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindAll(agentID *uint) ([]Client, error) {
	var list []Client
	q := r.DB.Order("id")
	if agentID != nil {
		q = q.Where("agent_id = ?", *agentID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Client, error) {
	var c Client
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Save(c *Client) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Client{}, id).Error
}
