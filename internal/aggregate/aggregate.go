// Package aggregate computes commission statistics. Everything here is pure:
// callers pass the record set and a reference time, nothing is cached or
// persisted. Aggregates are always derived from the live commission set and
// are never a source of truth.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencydesk/api-agency/internal/money"
)

// DefaultAgentRate is the observed default agent share of a commission split.
// It is configuration, not business law; every entry point takes the rate as
// a parameter.
const DefaultAgentRate = 0.60

// Record is the minimal view of a commission the aggregator needs. Entity
// packages and the SDK map their own types into it.
type Record struct {
	ID              uint
	Amount          string
	Status          string
	Type            string
	PolicyType      string
	PolicyStartDate time.Time
	PaymentDate     *time.Time
}

// effectiveDate is the date a record counts under for time-bucketed rollups:
// the payment date once paid, otherwise the policy start date.
func (r Record) effectiveDate() time.Time {
	if r.PaymentDate != nil {
		return *r.PaymentDate
	}
	return r.PolicyStartDate
}

// Warning flags a record whose amount did not parse and was summed as zero.
type Warning struct {
	RecordID uint   `json:"recordId"`
	Amount   string `json:"amount"`
}

func (w Warning) String() string {
	return fmt.Sprintf("commission %d: unparsable amount %q treated as 0", w.RecordID, w.Amount)
}

// Stats is the derived commission summary shown on dashboards.
type Stats struct {
	TotalCommissions  int               `json:"totalCommissions"`
	PendingAmount     string            `json:"pendingAmount"`
	PaidAmount        string            `json:"paidAmount"`
	ThisMonthAmount   string            `json:"thisMonthAmount"`
	CommissionsByType map[string]string `json:"commissionsByType"`
}

// Compute builds Stats from a record set. Cancelled records count toward the
// total only. Unparsable amounts are summed as zero and reported in the
// returned warnings.
func Compute(records []Record, now time.Time) (Stats, []Warning) {
	var warnings []Warning
	pending := decimal.Zero
	paid := decimal.Zero
	thisMonth := decimal.Zero
	byType := map[string]decimal.Decimal{}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	for _, r := range records {
		amt, ok := money.Parse(r.Amount)
		if !ok {
			warnings = append(warnings, Warning{RecordID: r.ID, Amount: r.Amount})
		}

		switch r.Status {
		case "pending":
			pending = pending.Add(amt)
		case "paid":
			paid = paid.Add(amt)
		}

		d := r.effectiveDate()
		if !d.Before(monthStart) && d.Before(monthEnd) {
			thisMonth = thisMonth.Add(amt)
		}

		if r.Type != "" {
			byType[r.Type] = byType[r.Type].Add(amt)
		}
	}

	formatted := make(map[string]string, len(byType))
	for k, v := range byType {
		formatted[k] = money.Format(v)
	}

	return Stats{
		TotalCommissions:  len(records),
		PendingAmount:     money.Format(pending),
		PaidAmount:        money.Format(paid),
		ThisMonthAmount:   money.Format(thisMonth),
		CommissionsByType: formatted,
	}, warnings
}

// GroupKey selects which field a breakdown groups by.
type GroupKey int

const (
	ByType GroupKey = iota
	ByPolicyType
	ByStatus
)

// Breakdown is one group's slice of the grand total.
type Breakdown struct {
	Key     string  `json:"key"`
	Amount  string  `json:"amount"`
	Percent float64 `json:"percent"`
}

// GroupBy sums amounts per group and expresses each group's share as a
// percentage of the grand total, rounded to one decimal. A zero grand total
// yields zero percentages rather than an error. Groups are returned in
// deterministic key order.
func GroupBy(records []Record, key GroupKey) ([]Breakdown, []Warning) {
	var warnings []Warning
	sums := map[string]decimal.Decimal{}
	total := decimal.Zero

	for _, r := range records {
		amt, ok := money.Parse(r.Amount)
		if !ok {
			warnings = append(warnings, Warning{RecordID: r.ID, Amount: r.Amount})
		}

		var k string
		switch key {
		case ByPolicyType:
			k = r.PolicyType
		case ByStatus:
			k = r.Status
		default:
			k = r.Type
		}
		sums[k] = sums[k].Add(amt)
		total = total.Add(amt)
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hundred := decimal.NewFromInt(100)
	out := make([]Breakdown, 0, len(keys))
	for _, k := range keys {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = sums[k].Mul(hundred).Div(total).Round(1)
		}
		out = append(out, Breakdown{
			Key:     k,
			Amount:  money.Format(sums[k]),
			Percent: pct.InexactFloat64(),
		})
	}
	return out, warnings
}

// SplitResult is the agent/company division of a commission total.
type SplitResult struct {
	Total        string  `json:"total"`
	AgentShare   string  `json:"agentShare"`
	CompanyShare string  `json:"companyShare"`
	AgentRate    float64 `json:"agentRate"`
}

// Split divides the summed amount of a record set between agent and company.
// The company share is computed as total minus agent share so the two always
// sum exactly to the total. Rates outside [0,1] are rejected.
func Split(records []Record, agentRate float64) (SplitResult, []Warning, error) {
	if agentRate < 0 || agentRate > 1 {
		return SplitResult{}, nil, fmt.Errorf("agent rate %v outside [0,1]", agentRate)
	}

	var warnings []Warning
	total := decimal.Zero
	for _, r := range records {
		amt, ok := money.Parse(r.Amount)
		if !ok {
			warnings = append(warnings, Warning{RecordID: r.ID, Amount: r.Amount})
		}
		total = total.Add(amt)
	}

	agent := total.Mul(decimal.NewFromFloat(agentRate)).Round(2)
	company := total.Sub(agent)

	return SplitResult{
		Total:        money.Format(total),
		AgentShare:   money.Format(agent),
		CompanyShare: money.Format(company),
		AgentRate:    agentRate,
	}, warnings, nil
}

// WeekWindow returns the Monday 00:00 start (inclusive) and the following
// Monday (exclusive) of the week containing now, in now's location.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// InWindow reports whether the record's effective date falls in [start, end).
func InWindow(r Record, start, end time.Time) bool {
	d := r.effectiveDate()
	return !d.Before(start) && d.Before(end)
}
