package recordstore_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agencydesk/api-agency/internal/agent"
	"github.com/agencydesk/api-agency/internal/clientrec"
	"github.com/agencydesk/api-agency/internal/commission"
	"github.com/agencydesk/api-agency/internal/lead"
	"github.com/agencydesk/api-agency/internal/policy"
	"github.com/agencydesk/api-agency/internal/recordstore"
	"github.com/agencydesk/api-agency/internal/server"
	"github.com/agencydesk/api-agency/internal/update"
)

func newTestStore(t *testing.T) *recordstore.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&agent.Agent{}, &clientrec.Client{}, &lead.Lead{},
		&policy.Policy{}, &commission.Commission{}, &update.Update{},
	))

	srv := httptest.NewServer(server.NewRouter(server.Config{DB: db}))
	t.Cleanup(srv.Close)
	return recordstore.New(srv.URL, recordstore.WithHTTPClient(srv.Client()))
}

func TestAgentCRUDRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Agents.Create(ctx, map[string]any{
		"firstName": "Dana",
		"lastName":  "Reyes",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "70.00", created.CommissionPercentage)

	got, err := store.Agents.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.FirstName)

	updated, err := store.Agents.Update(ctx, created.ID, map[string]any{
		"lastName": "Reyes-Ortega",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", updated.FirstName)
	assert.Equal(t, "Reyes-Ortega", updated.LastName)
}

func TestListNeverNil(t *testing.T) {
	store := newTestStore(t)

	list, err := store.Leads.List(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListFilterPassthrough(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a, err := store.Agents.Create(ctx, map[string]any{"firstName": "A", "lastName": "One"})
	require.NoError(t, err)
	_, err = store.Leads.Create(ctx, map[string]any{"firstName": "Hot", "lastName": "Lead", "agentId": a.ID})
	require.NoError(t, err)
	_, err = store.Leads.Create(ctx, map[string]any{"firstName": "Cold", "lastName": "Lead"})
	require.NoError(t, err)

	list, err := store.Leads.List(ctx, recordstore.Filter{"agentId": fmt.Sprint(a.ID)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hot", list[0].FirstName)
}

func TestDeleteIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Clients.Create(ctx, map[string]any{
		"firstName": "Sam", "lastName": "Okafor",
	})
	require.NoError(t, err)

	require.NoError(t, store.Clients.Delete(ctx, created.ID))
	require.NoError(t, store.Clients.Delete(ctx, created.ID))
	require.NoError(t, store.Clients.Delete(ctx, created.ID))

	_, err = store.Clients.Get(ctx, created.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestValidationErrorCarriesFields(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Agents.Create(context.Background(), map[string]any{
		"firstName": "OnlyFirst",
	})
	var verr *recordstore.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lastName")
}

func TestGetMissingIsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Policies.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestTransportErrorOnUnreachableStore(t *testing.T) {
	store := recordstore.New("http://127.0.0.1:1",
		recordstore.WithHTTPClient(&http.Client{}))

	_, err := store.Agents.List(context.Background(), nil)
	var terr *recordstore.TransportError
	require.ErrorAs(t, err, &terr)
	assert.False(t, errors.Is(err, recordstore.ErrNotFound))
}

func TestUpdateThenListIsFresh(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Agents.Create(ctx, map[string]any{
		"firstName": "Lee", "lastName": "Initial",
	})
	require.NoError(t, err)

	_, err = store.Agents.Update(ctx, created.ID, map[string]any{"lastName": "Changed"})
	require.NoError(t, err)

	list, err := store.Agents.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Changed", list[0].LastName)
}

func TestCommissionStatsView(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Commissions.Create(ctx, map[string]any{
		"policyNumber":    "TL-1",
		"clientId":        1,
		"brokerId":        1,
		"amount":          "$100.00",
		"policyStartDate": "2024-06-01T00:00:00Z",
		"policyType":      "Term Life",
		"status":          "paid",
	})
	require.NoError(t, err)

	stats, err := store.CommissionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCommissions)
	assert.Equal(t, "$100.00", stats.PaidAmount)
}
