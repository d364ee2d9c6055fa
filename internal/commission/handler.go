package commission

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/aggregate"
	"github.com/agencydesk/api-agency/internal/apierrors"
	"github.com/agencydesk/api-agency/internal/patch"
	"github.com/agencydesk/api-agency/internal/validation"
)

// Handler serves the /commissions routes, including the derived stats and
// weekly split views.
type Handler struct {
	Repo      *Repository
	AgentRate float64
	Logger    *slog.Logger

	// now is swappable for tests of the time-bucketed views.
	now func() time.Time
}

func NewHandler(db *gorm.DB, agentRate float64, logger *slog.Logger) *Handler {
	if agentRate <= 0 || agentRate > 1 {
		agentRate = aggregate.DefaultAgentRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Repo:      NewRepository(db),
		AgentRate: agentRate,
		Logger:    logger,
		now:       time.Now,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.Error(w, http.StatusBadRequest, "malformed JSON")
		return
	}
	if ferr := validation.Struct(req); ferr != nil {
		apierrors.Validation(w, ferr)
		return
	}

	c := Commission{
		Name:            req.Name,
		PolicyNumber:    req.PolicyNumber,
		ClientID:        req.ClientID,
		BrokerID:        req.BrokerID,
		Amount:          req.Amount,
		Status:          req.Status,
		Type:            req.Type,
		PolicyStartDate: *req.PolicyStartDate,
		PolicyEndDate:   req.PolicyEndDate,
		PaymentDate:     req.PaymentDate,
		Carrier:         req.Carrier,
		PolicyType:      req.PolicyType,
		Notes:           req.Notes,
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	if c.Type == "" {
		c.Type = "initial"
	}

	if err := h.Repo.Create(&c); err != nil {
		apierrors.Internal(w, "failed to save commission")
		return
	}
	apierrors.JSON(w, http.StatusCreated, c)
}

// List handles GET /commissions with optional brokerId, clientId, status and
// type filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f Filter
	if raw := r.URL.Query().Get("brokerId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.Error(w, http.StatusBadRequest, "invalid brokerId filter")
			return
		}
		v := uint(id)
		f.BrokerID = &v
	}
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.Error(w, http.StatusBadRequest, "invalid clientId filter")
			return
		}
		v := uint(id)
		f.ClientID = &v
	}
	f.Status = r.URL.Query().Get("status")
	f.Type = r.URL.Query().Get("type")

	list, err := h.Repo.FindAll(f)
	if err != nil {
		apierrors.Internal(w, "failed to list commissions")
		return
	}
	if list == nil {
		list = []Commission{}
	}
	apierrors.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid commission id")
		return
	}
	c, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "commission not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

// Stats handles GET /commissions/stats. The summary is always recomputed from
// the live record set; unparsable amounts count as zero and are logged.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll(Filter{})
	if err != nil {
		apierrors.Internal(w, "failed to load commissions")
		return
	}

	stats, warnings := aggregate.Compute(ToRecords(list), h.now())
	h.logWarnings(warnings)
	apierrors.JSON(w, http.StatusOK, stats)
}

// Breakdown handles GET /commissions/stats/by-type?group=policyType.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll(Filter{})
	if err != nil {
		apierrors.Internal(w, "failed to load commissions")
		return
	}

	key := aggregate.ByType
	switch r.URL.Query().Get("group") {
	case "policyType":
		key = aggregate.ByPolicyType
	case "status":
		key = aggregate.ByStatus
	}

	breakdown, warnings := aggregate.GroupBy(ToRecords(list), key)
	h.logWarnings(warnings)
	apierrors.JSON(w, http.StatusOK, breakdown)
}

// WeeklyByAgent handles GET /commissions/weekly/by-agent/{id}. The split rate
// defaults to the configured agent rate and may be overridden per request
// with ?rate=.
func (h *Handler) WeeklyByAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := pathID(r, "id")
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	rate := h.AgentRate
	if raw := r.URL.Query().Get("rate"); raw != "" {
		rate, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			apierrors.Error(w, http.StatusBadRequest, "invalid rate")
			return
		}
	}

	start, end := aggregate.WeekWindow(h.now())
	list, err := h.Repo.FindForBrokerInWindow(agentID, start, end)
	if err != nil {
		apierrors.Internal(w, "failed to load commissions")
		return
	}
	if list == nil {
		list = []Commission{}
	}

	split, warnings, err := aggregate.Split(ToRecords(list), rate)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logWarnings(warnings)

	apierrors.JSON(w, http.StatusOK, WeeklyResponse{
		AgentID:      agentID,
		WeekStart:    start,
		WeekEnd:      end,
		Commissions:  list,
		Total:        split.Total,
		AgentShare:   split.AgentShare,
		CompanyShare: split.CompanyShare,
		AgentRate:    split.AgentRate,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid commission id")
		return
	}
	c, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "commission not found")
		return
	}

	fields, body, err := patch.Decode(r.Body)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "malformed JSON")
		return
	}
	var req UpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		apierrors.Error(w, http.StatusBadRequest, "malformed JSON")
		return
	}
	if ferr := validation.Struct(req); ferr != nil {
		apierrors.Validation(w, ferr)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.PolicyNumber != nil {
		c.PolicyNumber = *req.PolicyNumber
	}
	if req.ClientID != nil {
		c.ClientID = *req.ClientID
	}
	if req.BrokerID != nil {
		c.BrokerID = *req.BrokerID
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.PolicyStartDate != nil {
		c.PolicyStartDate = *req.PolicyStartDate
	}
	if fields.IsNull("policyEndDate") {
		c.PolicyEndDate = nil
	} else if req.PolicyEndDate != nil {
		c.PolicyEndDate = req.PolicyEndDate
	}
	if fields.IsNull("paymentDate") {
		c.PaymentDate = nil
	} else if req.PaymentDate != nil {
		c.PaymentDate = req.PaymentDate
	}
	if req.Carrier != nil {
		c.Carrier = *req.Carrier
	}
	if req.PolicyType != nil {
		c.PolicyType = *req.PolicyType
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	if err := h.Repo.Save(c); err != nil {
		apierrors.Internal(w, "failed to update commission")
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid commission id")
		return
	}
	if _, err := h.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load commission")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		apierrors.Internal(w, "failed to delete commission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logWarnings(warnings []aggregate.Warning) {
	for _, warn := range warnings {
		h.Logger.Warn("unparsable commission amount treated as zero",
			"commissionId", warn.RecordID,
			"amount", warn.Amount,
		)
	}
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	return uint(id), err
}
