package policy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/apierrors"
	"github.com/agencydesk/api-agency/internal/patch"
	"github.com/agencydesk/api-agency/internal/validation"
)

type CreateRequest struct {
	PolicyNumber     string     `json:"policyNumber" validate:"required"`
	Carrier          string     `json:"carrier" validate:"required"`
	PolicyType       string     `json:"policyType" validate:"required,oneof='Term Life' 'Whole Life' 'Universal Life' 'Variable Life' 'Index Universal Life' 'Final Expense' 'Disability Income' 'Long-Term Care' 'Group Life' 'Health' 'Annuity'"`
	FaceAmount       string     `json:"faceAmount" validate:"required"`
	PremiumAmount    string     `json:"premiumAmount" validate:"required"`
	PremiumFrequency string     `json:"premiumFrequency" validate:"required,oneof=monthly quarterly semi-annual annual"`
	IssueDate        *time.Time `json:"issueDate" validate:"required"`
	ExpiryDate       *time.Time `json:"expiryDate"`
	Status           string     `json:"status" validate:"required,oneof=active pending lapsed cancelled expired"`
	ClientID         *uint      `json:"clientId"`
	LeadID           *uint      `json:"leadId"`
	AgentID          *uint      `json:"agentId"`
}

type UpdateRequest struct {
	PolicyNumber     *string    `json:"policyNumber" validate:"omitempty,min=1"`
	Carrier          *string    `json:"carrier" validate:"omitempty,min=1"`
	PolicyType       *string    `json:"policyType" validate:"omitempty,oneof='Term Life' 'Whole Life' 'Universal Life' 'Variable Life' 'Index Universal Life' 'Final Expense' 'Disability Income' 'Long-Term Care' 'Group Life' 'Health' 'Annuity'"`
	FaceAmount       *string    `json:"faceAmount"`
	PremiumAmount    *string    `json:"premiumAmount"`
	PremiumFrequency *string    `json:"premiumFrequency" validate:"omitempty,oneof=monthly quarterly semi-annual annual"`
	IssueDate        *time.Time `json:"issueDate"`
	ExpiryDate       *time.Time `json:"expiryDate"`
	Status           *string    `json:"status" validate:"omitempty,oneof=active pending lapsed cancelled expired"`
	ClientID         *uint      `json:"clientId"`
	LeadID           *uint      `json:"leadId"`
	AgentID          *uint      `json:"agentId"`
}

type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
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

	p := Policy{
		PolicyNumber:     req.PolicyNumber,
		Carrier:          req.Carrier,
		PolicyType:       req.PolicyType,
		FaceAmount:       req.FaceAmount,
		PremiumAmount:    req.PremiumAmount,
		PremiumFrequency: req.PremiumFrequency,
		IssueDate:        *req.IssueDate,
		ExpiryDate:       req.ExpiryDate,
		Status:           req.Status,
		ClientID:         req.ClientID,
		LeadID:           req.LeadID,
		AgentID:          req.AgentID,
	}
	if err := h.Repo.Create(&p); err != nil {
		apierrors.Internal(w, "failed to save policy")
		return
	}
	apierrors.JSON(w, http.StatusCreated, p)
}

// List handles GET /policies with optional agentId, clientId and status
// filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f Filter
	if raw := r.URL.Query().Get("agentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.Error(w, http.StatusBadRequest, "invalid agentId filter")
			return
		}
		v := uint(id)
		f.AgentID = &v
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

	list, err := h.Repo.FindAll(f)
	if err != nil {
		apierrors.Internal(w, "failed to list policies")
		return
	}
	if list == nil {
		list = []Policy{}
	}
	apierrors.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid policy id")
		return
	}
	p, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "policy not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid policy id")
		return
	}
	p, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "policy not found")
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

	if req.PolicyNumber != nil {
		p.PolicyNumber = *req.PolicyNumber
	}
	if req.Carrier != nil {
		p.Carrier = *req.Carrier
	}
	if req.PolicyType != nil {
		p.PolicyType = *req.PolicyType
	}
	if req.FaceAmount != nil {
		p.FaceAmount = *req.FaceAmount
	}
	if req.PremiumAmount != nil {
		p.PremiumAmount = *req.PremiumAmount
	}
	if req.PremiumFrequency != nil {
		p.PremiumFrequency = *req.PremiumFrequency
	}
	if req.IssueDate != nil {
		p.IssueDate = *req.IssueDate
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if fields.IsNull("expiryDate") {
		p.ExpiryDate = nil
	} else if req.ExpiryDate != nil {
		p.ExpiryDate = req.ExpiryDate
	}
	if fields.IsNull("clientId") {
		p.ClientID = nil
	} else if req.ClientID != nil {
		p.ClientID = req.ClientID
	}
	if fields.IsNull("leadId") {
		p.LeadID = nil
	} else if req.LeadID != nil {
		p.LeadID = req.LeadID
	}
	if fields.IsNull("agentId") {
		p.AgentID = nil
	} else if req.AgentID != nil {
		p.AgentID = req.AgentID
	}

	if err := h.Repo.Save(p); err != nil {
		apierrors.Internal(w, "failed to update policy")
		return
	}
	apierrors.JSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid policy id")
		return
	}
	if _, err := h.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load policy")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		apierrors.Internal(w, "failed to delete policy")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
