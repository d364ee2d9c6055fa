// Package mutation coordinates write operations against the record store and
// owns the cache invalidation contract: after any successful mutation every
// dependent cached read is marked stale and recomputed on its next read.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agencydesk/api-agency/internal/notify"
	"github.com/agencydesk/api-agency/internal/validation"
)

type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

func (k Kind) past() string {
	switch k {
	case KindCreate:
		return "created"
	case KindUpdate:
		return "updated"
	case KindDelete:
		return "deleted"
	default:
		return string(k)
	}
}

// ErrInFlight is returned when the same logical operation is resubmitted
// while still running. Callers must not issue duplicate creates or updates
// for the same record; this makes that rule uniform instead of per-form.
var ErrInFlight = errors.New("mutation already in flight")

// Op is one logical mutation. Apply performs the store call; Payload, when
// set, is re-validated before any network traffic even if a form layer
// already validated it.
type Op struct {
	Entity  string // collection path, e.g. "agents"
	ID      uint   // zero for creates
	Kind    Kind
	Label   string // human name used in notifications, e.g. "agent"
	Payload any
	Apply   func(ctx context.Context) error
}

type opKey struct {
	entity string
	id     uint
	kind   Kind
}

// Coordinator runs mutations. Independent operations may run concurrently;
// each is tracked by (entity, id, kind). There is no automatic retry: a
// failed operation returns to idle and the caller decides.
type Coordinator struct {
	cache  *Cache
	sink   notify.Sink
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[opKey]struct{}
}

func NewCoordinator(cache *Cache, sink notify.Sink, logger *slog.Logger) *Coordinator {
	if sink == nil {
		sink = notify.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		cache:    cache,
		sink:     sink,
		logger:   logger,
		inflight: map[opKey]struct{}{},
	}
}

// Cache exposes the coordinator's cache for readers.
func (c *Coordinator) Cache() *Cache { return c.cache }

// InFlight reports whether the logical operation is currently submitting.
func (c *Coordinator) InFlight(entity string, id uint, kind Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[opKey{entity: entity, id: id, kind: kind}]
	return busy
}

// Run executes op. On success the dependent cache entries are invalidated and
// a success notification is emitted; on failure nothing is invalidated, the
// failure is surfaced both as a notification and as the returned error, and
// the operation may be resubmitted.
func (c *Coordinator) Run(ctx context.Context, op Op) error {
	if op.Apply == nil {
		return errors.New("mutation: op has no apply function")
	}

	if op.Payload != nil {
		if ferr := validation.Struct(op.Payload); ferr != nil {
			c.notifyFailure(ctx, op, ferr)
			return ferr
		}
	}

	key := opKey{entity: op.Entity, id: op.ID, kind: op.Kind}
	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	if err := op.Apply(ctx); err != nil {
		c.notifyFailure(ctx, op, err)
		return err
	}

	c.cache.Invalidate(dependents(op.Entity)...)
	c.sink.Notify(ctx, notify.Event{
		Severity:    notify.Success,
		Title:       fmt.Sprintf("%s %s", op.Label, op.Kind.past()),
		Description: fmt.Sprintf("The %s was %s successfully.", op.Label, op.Kind.past()),
	})
	return nil
}

func (c *Coordinator) notifyFailure(ctx context.Context, op Op, err error) {
	c.logger.Error("mutation failed",
		"entity", op.Entity, "id", op.ID, "kind", op.Kind, "err", err)
	c.sink.Notify(ctx, notify.Event{
		Severity:    notify.Error,
		Title:       fmt.Sprintf("%s %s failed", op.Label, op.Kind),
		Description: err.Error(),
	})
}

// dependents lists the cached collections a mutation of the given entity can
// affect: its own list, derived aggregates, and filtered views keyed by a
// foreign id. Agent mutations reach furthest because deleting an agent clears
// the agent link on leads, clients and policies.
func dependents(entity string) []string {
	switch entity {
	case "commissions":
		return []string{"commissions", "commissions/stats", "commissions/weekly"}
	case "agents":
		return []string{"agents", "clients", "leads", "policies", "commissions", "commissions/stats", "commissions/weekly"}
	case "clients":
		return []string{"clients", "policies", "commissions", "commissions/stats"}
	case "leads":
		return []string{"leads", "policies"}
	case "policies":
		return []string{"policies", "commissions", "commissions/stats"}
	default:
		return []string{entity}
	}
}
