package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/api-agency/internal/money"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeBasic(t *testing.T) {
	now := date("2024-06-15")
	records := []Record{
		{ID: 1, Amount: "$100.00", Status: "pending", PolicyStartDate: date("2024-06-01")},
		{ID: 2, Amount: "$200.00", Status: "paid", PolicyStartDate: date("2024-06-02")},
	}

	stats, warnings := Compute(records, now)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, stats.TotalCommissions)
	assert.Equal(t, "$100.00", stats.PendingAmount)
	assert.Equal(t, "$200.00", stats.PaidAmount)
	assert.Equal(t, "$300.00", stats.ThisMonthAmount)
}

func TestComputeThisMonthUsesPaymentDateWhenPresent(t *testing.T) {
	now := date("2024-06-15")
	paid := date("2024-05-20")
	records := []Record{
		// Started in June but paid in May: counts under May, not this month.
		{ID: 1, Amount: "500", Status: "paid", PolicyStartDate: date("2024-06-01"), PaymentDate: &paid},
		{ID: 2, Amount: "250", Status: "pending", PolicyStartDate: date("2024-06-30")},
		{ID: 3, Amount: "80", Status: "pending", PolicyStartDate: date("2024-07-01")},
	}

	stats, _ := Compute(records, now)
	assert.Equal(t, "$250.00", stats.ThisMonthAmount)
}

func TestComputeUnparsableAmountsFlaggedAndZeroed(t *testing.T) {
	now := date("2024-06-15")
	records := []Record{
		{ID: 7, Amount: "garbage", Status: "pending", PolicyStartDate: now},
		{ID: 8, Amount: "$50.00", Status: "pending", PolicyStartDate: now},
	}

	stats, warnings := Compute(records, now)
	require.Len(t, warnings, 1)
	assert.Equal(t, uint(7), warnings[0].RecordID)
	assert.Equal(t, "$50.00", stats.PendingAmount)
	assert.Equal(t, 2, stats.TotalCommissions)
}

func TestComputeCancelledExcludedFromSums(t *testing.T) {
	now := date("2024-06-15")
	records := []Record{
		{ID: 1, Amount: "100", Status: "pending", PolicyStartDate: now},
		{ID: 2, Amount: "200", Status: "paid", PolicyStartDate: now},
		{ID: 3, Amount: "999", Status: "cancelled", PolicyStartDate: now},
	}

	stats, _ := Compute(records, now)
	assert.Equal(t, 3, stats.TotalCommissions)
	assert.Equal(t, "$100.00", stats.PendingAmount)
	assert.Equal(t, "$200.00", stats.PaidAmount)
}

func TestGroupByPercentages(t *testing.T) {
	records := []Record{
		{ID: 1, Amount: "100", Type: "initial"},
		{ID: 2, Amount: "300", Type: "renewal"},
	}

	breakdown, warnings := GroupBy(records, ByType)
	assert.Empty(t, warnings)
	require.Len(t, breakdown, 2)
	assert.Equal(t, Breakdown{Key: "initial", Amount: "$100.00", Percent: 25.0}, breakdown[0])
	assert.Equal(t, Breakdown{Key: "renewal", Amount: "$300.00", Percent: 75.0}, breakdown[1])
}

func TestGroupByZeroTotal(t *testing.T) {
	records := []Record{
		{ID: 1, Amount: "0", Type: "initial"},
		{ID: 2, Amount: "junk", Type: "renewal"},
	}

	breakdown, warnings := GroupBy(records, ByType)
	require.Len(t, warnings, 1)
	for _, b := range breakdown {
		assert.Zero(t, b.Percent)
	}
}

func TestGroupByPercentagesSumToHundred(t *testing.T) {
	records := []Record{
		{ID: 1, Amount: "33.33", Type: "initial"},
		{ID: 2, Amount: "33.33", Type: "renewal"},
		{ID: 3, Amount: "33.34", Type: "bonus"},
	}

	breakdown, _ := GroupBy(records, ByType)
	var sum float64
	for _, b := range breakdown {
		sum += b.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.2)
}

func TestSplitDefaultRate(t *testing.T) {
	records := []Record{{ID: 1, Amount: "$500.00", Status: "pending"}}

	split, warnings, err := Split(records, DefaultAgentRate)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "$500.00", split.Total)
	assert.Equal(t, "$300.00", split.AgentShare)
	assert.Equal(t, "$200.00", split.CompanyShare)
}

func TestSplitSharesSumToTotal(t *testing.T) {
	records := []Record{
		{ID: 1, Amount: "33.33"},
		{ID: 2, Amount: "$1,234.56"},
		{ID: 3, Amount: "0.01"},
	}

	for _, rate := range []float64{0, 0.17, 0.5, 0.6, 0.99, 1} {
		split, _, err := Split(records, rate)
		require.NoError(t, err)

		// Company share is derived as total minus agent share, so the two
		// display amounts always recombine into the total exactly.
		agent := mustParse(t, split.AgentShare)
		company := mustParse(t, split.CompanyShare)
		total := mustParse(t, split.Total)
		assert.True(t, agent.Add(company).Equal(total),
			"rate %v: %s + %s != %s", rate, agent, company, total)
	}
}

func TestSplitRejectsOutOfRangeRate(t *testing.T) {
	_, _, err := Split(nil, 1.5)
	assert.Error(t, err)
	_, _, err = Split(nil, -0.1)
	assert.Error(t, err)
}

func TestWeekWindow(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	start, end := WeekWindow(date("2024-06-12"))
	assert.Equal(t, date("2024-06-10"), start)
	assert.Equal(t, date("2024-06-17"), end)

	// A Monday is its own week start; a Sunday belongs to the prior Monday.
	start, _ = WeekWindow(date("2024-06-10"))
	assert.Equal(t, date("2024-06-10"), start)
	start, _ = WeekWindow(date("2024-06-16"))
	assert.Equal(t, date("2024-06-10"), start)
}

func TestInWindow(t *testing.T) {
	start, end := WeekWindow(date("2024-06-12"))
	paid := date("2024-06-11")

	assert.True(t, InWindow(Record{PolicyStartDate: date("2024-06-10")}, start, end))
	assert.False(t, InWindow(Record{PolicyStartDate: date("2024-06-17")}, start, end))
	assert.True(t, InWindow(Record{PolicyStartDate: date("2024-01-01"), PaymentDate: &paid}, start, end))
}

func mustParse(t *testing.T, display string) decimal.Decimal {
	t.Helper()
	d, ok := money.Parse(display)
	require.True(t, ok, "unparsable display amount %q", display)
	return d
}
