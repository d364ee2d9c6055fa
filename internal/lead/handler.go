package lead

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

type CreateRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Status    string `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Notes     string `json:"notes"`
	AgentID   *uint  `json:"agentId"`
}

type UpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Source    *string `json:"source"`
	Status    *string `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Notes     *string `json:"notes"`
	AgentID   *uint   `json:"agentId"`
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

	l := Lead{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Source:    req.Source,
		Status:    req.Status,
		Notes:     req.Notes,
		AgentID:   req.AgentID,
	}
	if l.Status == "" {
		l.Status = "new"
	}
	if err := h.Repo.Create(&l); err != nil {
		apierrors.Internal(w, "failed to save lead")
		return
	}
	apierrors.JSON(w, http.StatusCreated, l)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var agentID *uint
	if raw := r.URL.Query().Get("agentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.Error(w, http.StatusBadRequest, "invalid agentId filter")
			return
		}
		v := uint(id)
		agentID = &v
	}

	list, err := h.Repo.FindAll(agentID, r.URL.Query().Get("status"))
	if err != nil {
		apierrors.Internal(w, "failed to list leads")
		return
	}
	if list == nil {
		list = []Lead{}
	}
	apierrors.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}
	l, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "lead not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, l)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}
	l, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "lead not found")
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

	if req.FirstName != nil {
		l.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		l.LastName = *req.LastName
	}
	if req.Email != nil {
		l.Email = *req.Email
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.Source != nil {
		l.Source = *req.Source
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Notes != nil {
		l.Notes = *req.Notes
	}
	if fields.IsNull("agentId") {
		l.AgentID = nil
	} else if req.AgentID != nil {
		l.AgentID = req.AgentID
	}

	if err := h.Repo.Save(l); err != nil {
		apierrors.Internal(w, "failed to update lead")
		return
	}
	apierrors.JSON(w, http.StatusOK, l)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}
	if _, err := h.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load lead")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		apierrors.Internal(w, "failed to delete lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
