package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/apierrors"
	"github.com/agencydesk/api-agency/internal/patch"
	"github.com/agencydesk/api-agency/internal/validation"
)

// Handler serves the /agents routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Create handles POST /agents. Quick-add payloads carry only firstName and
// lastName; everything else is defaulted.
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

	if req.UplineAgentID != nil {
		if err := h.Repository.CheckUpline(h.DB, 0, *req.UplineAgentID); err != nil {
			h.writeUplineError(w, err)
			return
		}
	}

	a := Agent{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		LicenseNumber:        req.LicenseNumber,
		LicenseState:         req.LicenseState,
		CommissionPercentage: req.CommissionPercentage,
		OverridePercentage:   req.OverridePercentage,
		UplineAgentID:        req.UplineAgentID,
		BankName:             req.BankName,
		AccountType:          req.AccountType,
		AccountNumber:        req.AccountNumber,
		RoutingNumber:        req.RoutingNumber,
		PaymentMethod:        PaymentMethodDirectDeposit,
	}
	if a.CommissionPercentage == "" {
		a.CommissionPercentage = DefaultCommissionPercentage
	}

	if err := h.Repository.Save(h.DB, &a); err != nil {
		apierrors.Internal(w, "failed to save agent")
		return
	}
	apierrors.JSON(w, http.StatusCreated, a)
}

// List handles GET /agents.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Repository.FindAll(h.DB)
	if err != nil {
		apierrors.Internal(w, "failed to list agents")
		return
	}
	if agents == nil {
		agents = []Agent{}
	}
	apierrors.JSON(w, http.StatusOK, agents)
}

// Get handles GET /agents/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid agent id")
		return
	}
	a, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		apierrors.NotFound(w, "agent not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, a)
}

// Update handles PATCH /agents/{id} with merge semantics: absent fields stay
// untouched, an explicit null uplineAgentId detaches the agent from its
// upline.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	a, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		apierrors.NotFound(w, "agent not found")
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

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&a.FirstName, req.FirstName)
	applyString(&a.LastName, req.LastName)
	applyString(&a.Email, req.Email)
	applyString(&a.Phone, req.Phone)
	applyString(&a.LicenseNumber, req.LicenseNumber)
	applyString(&a.LicenseState, req.LicenseState)
	applyString(&a.CommissionPercentage, req.CommissionPercentage)
	applyString(&a.OverridePercentage, req.OverridePercentage)
	applyString(&a.BankName, req.BankName)
	applyString(&a.AccountType, req.AccountType)
	applyString(&a.AccountNumber, req.AccountNumber)
	applyString(&a.RoutingNumber, req.RoutingNumber)

	if fields.IsNull("uplineAgentId") {
		a.UplineAgentID = nil
	} else if req.UplineAgentID != nil {
		if err := h.Repository.CheckUpline(h.DB, id, *req.UplineAgentID); err != nil {
			h.writeUplineError(w, err)
			return
		}
		a.UplineAgentID = req.UplineAgentID
	}

	if err := h.Repository.Save(h.DB, a); err != nil {
		apierrors.Internal(w, "failed to update agent")
		return
	}
	apierrors.JSON(w, http.StatusOK, a)
}

// Delete handles DELETE /agents/{id}. Deleting an absent id is a success:
// the desired end state already holds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	if _, err := h.Repository.FindByID(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load agent")
		return
	}

	if err := h.Repository.Delete(h.DB, id); err != nil {
		apierrors.Internal(w, "failed to delete agent")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeUplineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUplineCycle):
		apierrors.Validation(w, &validation.FieldErrors{
			Fields: map[string]string{"uplineAgentId": "would create a cycle in the upline chain"},
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		apierrors.Validation(w, &validation.FieldErrors{
			Fields: map[string]string{"uplineAgentId": "referenced agent does not exist"},
		})
	default:
		apierrors.Internal(w, "failed to verify upline")
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
