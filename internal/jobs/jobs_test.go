package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agencydesk/api-agency/internal/policy"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, policy.Migrate(db))
	return db
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(newTestDB(t), nil)
	require.NoError(t, m.Setup())
	m.Start()
	m.Stop()
}

func TestExpirySweepFlipsOverduePolicies(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db, nil)

	past := time.Now().AddDate(0, 0, -1)
	p := policy.Policy{
		PolicyNumber:     "P-1",
		Carrier:          "Acme Life",
		PolicyType:       "Term Life",
		FaceAmount:       "250000",
		PremiumAmount:    "85.00",
		PremiumFrequency: "monthly",
		IssueDate:        past.AddDate(-1, 0, 0),
		ExpiryDate:       &past,
		Status:           policy.StatusActive,
	}
	require.NoError(t, db.Create(&p).Error)

	m.runExpirySweep()

	var got policy.Policy
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, policy.StatusExpired, got.Status)
}
