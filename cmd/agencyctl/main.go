// agencyctl is a small operator console over the record store API: dashboard
// stats, weekly splits, and quick record operations from the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/agencydesk/api-agency/internal/agent"
	"github.com/agencydesk/api-agency/internal/mutation"
	"github.com/agencydesk/api-agency/internal/notify"
	"github.com/agencydesk/api-agency/internal/recordstore"
)

func main() {
	baseURL := pflag.String("base-url", "http://localhost:8080", "record store base URL")
	timeout := pflag.Duration("timeout", 30*time.Second, "request timeout")
	agentID := pflag.Uint("agent", 0, "agent id for the weekly command")
	rate := pflag.Float64("rate", 0, "agent split rate override for the weekly command")
	firstName := pflag.String("first", "", "first name for quick-add")
	lastName := pflag.String("last", "", "last name for quick-add")
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store := recordstore.New(*baseURL)
	coordinator := mutation.NewCoordinator(
		mutation.NewCache(),
		notify.WriterSink{W: os.Stderr},
		slog.New(slog.NewTextHandler(os.Stderr, nil)),
	)

	var err error
	switch pflag.Arg(0) {
	case "stats":
		err = showStats(ctx, store)
	case "weekly":
		err = showWeekly(ctx, store, *agentID, *rate)
	case "agents":
		err = listAgents(ctx, store, coordinator)
	case "quick-add":
		err = quickAdd(ctx, store, coordinator, *firstName, *lastName)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: agencyctl [flags] <command>

commands:
  stats                      commission dashboard summary
  weekly --agent N [--rate]  this week's commissions and split for an agent
  agents                     list agents
  quick-add --first --last   create an agent with just a name`)
	pflag.PrintDefaults()
}

func showStats(ctx context.Context, store *recordstore.Client) error {
	stats, err := store.CommissionStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("commissions: %d\n", stats.TotalCommissions)
	fmt.Printf("pending:     %s\n", stats.PendingAmount)
	fmt.Printf("paid:        %s\n", stats.PaidAmount)
	fmt.Printf("this month:  %s\n", stats.ThisMonthAmount)
	for t, amount := range stats.CommissionsByType {
		fmt.Printf("  %-10s %s\n", t, amount)
	}
	return nil
}

func showWeekly(ctx context.Context, store *recordstore.Client, agentID uint, rate float64) error {
	if agentID == 0 {
		return fmt.Errorf("weekly requires --agent")
	}
	resp, err := store.WeeklyByAgent(ctx, agentID, rate)
	if err != nil {
		return err
	}

	fmt.Printf("agent %d, week of %s\n", resp.AgentID, resp.WeekStart.Format("2006-01-02"))
	for _, c := range resp.Commissions {
		fmt.Printf("  #%-5d %-20s %s (%s)\n", c.ID, c.PolicyNumber, c.Amount, c.Status)
	}
	fmt.Printf("total: %s  agent: %s  company: %s  (rate %.2f)\n",
		resp.Total, resp.AgentShare, resp.CompanyShare, resp.AgentRate)
	return nil
}

func listAgents(ctx context.Context, store *recordstore.Client, coordinator *mutation.Coordinator) error {
	key := mutation.Key{Entity: store.Agents.Path()}
	agents, err := mutation.GetOrFetch(ctx, coordinator.Cache(), key,
		func(ctx context.Context) ([]agent.Agent, error) {
			return store.Agents.List(ctx, nil)
		})
	if err != nil {
		return err
	}

	for _, a := range agents {
		upline := "-"
		if a.UplineAgentID != nil {
			upline = fmt.Sprintf("%d", *a.UplineAgentID)
		}
		fmt.Printf("#%-5d %-25s commission %s%%  upline %s\n",
			a.ID, a.FirstName+" "+a.LastName, a.CommissionPercentage, upline)
	}
	return nil
}

func quickAdd(ctx context.Context, store *recordstore.Client, coordinator *mutation.Coordinator, first, last string) error {
	payload := agent.CreateRequest{FirstName: first, LastName: last}
	return coordinator.Run(ctx, mutation.Op{
		Entity:  store.Agents.Path(),
		Kind:    mutation.KindCreate,
		Label:   "agent",
		Payload: payload,
		Apply: func(ctx context.Context) error {
			created, err := store.Agents.Create(ctx, payload)
			if err != nil {
				return err
			}
			fmt.Printf("created agent #%d (%s %s, commission %s%%)\n",
				created.ID, created.FirstName, created.LastName, created.CommissionPercentage)
			return nil
		},
	})
}
