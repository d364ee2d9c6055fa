package agent

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUplineCycle is returned when an upline assignment would make an agent
// (transitively) report to themselves.
var ErrUplineCycle = errors.New("upline assignment would create a cycle")

// maxUplineDepth bounds the upline walk so a corrupted chain cannot loop
// forever.
const maxUplineDepth = 100

type Repository interface {
	Save(db *gorm.DB, a *Agent) error
	FindByID(db *gorm.DB, id uint) (*Agent, error)
	FindAll(db *gorm.DB) ([]Agent, error)
	Delete(db *gorm.DB, id uint) error
	CheckUpline(db *gorm.DB, agentID uint, uplineID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, a *Agent) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Agent, error) {
	var a Agent
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) FindAll(db *gorm.DB) ([]Agent, error) {
	var agents []Agent
	err := db.Order("id").Find(&agents).Error
	return agents, err
}

// CheckUpline verifies the proposed upline exists and that walking its chain
// never reaches agentID. agentID is zero for a not-yet-created agent, which
// cannot be part of any existing chain.
func (r *repositoryImpl) CheckUpline(db *gorm.DB, agentID uint, uplineID uint) error {
	if agentID != 0 && uplineID == agentID {
		return ErrUplineCycle
	}

	current := uplineID
	for depth := 0; depth < maxUplineDepth; depth++ {
		var a Agent
		if err := db.Select("id", "upline_agent_id").First(&a, current).Error; err != nil {
			return err
		}
		if a.UplineAgentID == nil {
			return nil
		}
		next := *a.UplineAgentID
		if agentID != 0 && next == agentID {
			return ErrUplineCycle
		}
		current = next
	}
	return ErrUplineCycle
}

// Delete removes the agent and clears the agent association on leads, clients
// and policies. The associated records themselves are kept. Everything runs
// in one transaction.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"leads", "clients", "policies"} {
			if err := tx.Table(table).
				Where("agent_id = ?", id).
				Update("agent_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&Agent{}).
			Where("upline_agent_id = ?", id).
			Update("upline_agent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Agent{}, id).Error
	})
}
