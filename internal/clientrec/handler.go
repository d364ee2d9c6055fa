package clientrec

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
	FirstName   string     `json:"firstName" validate:"required"`
	LastName    string     `json:"lastName" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     string     `json:"address"`
	AgentID     *uint      `json:"agentId"`
}

type UpdateRequest struct {
	FirstName   *string    `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string    `json:"lastName" validate:"omitempty,min=1"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     *string    `json:"address"`
	AgentID     *uint      `json:"agentId"`
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

	c := Client{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		AgentID:     req.AgentID,
	}
	if err := h.Repo.Create(&c); err != nil {
		apierrors.Internal(w, "failed to save client")
		return
	}
	apierrors.JSON(w, http.StatusCreated, c)
}

// List handles GET /clients with an optional agentId filter.
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

	list, err := h.Repo.FindAll(agentID)
	if err != nil {
		apierrors.Internal(w, "failed to list clients")
		return
	}
	if list == nil {
		list = []Client{}
	}
	apierrors.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}
	c, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "client not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}
	c, err := h.Repo.FindByID(id)
	if err != nil {
		apierrors.NotFound(w, "client not found")
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
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if fields.IsNull("dateOfBirth") {
		c.DateOfBirth = nil
	} else if req.DateOfBirth != nil {
		c.DateOfBirth = req.DateOfBirth
	}
	if fields.IsNull("agentId") {
		c.AgentID = nil
	} else if req.AgentID != nil {
		c.AgentID = req.AgentID
	}

	if err := h.Repo.Save(c); err != nil {
		apierrors.Internal(w, "failed to update client")
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}
	if _, err := h.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load client")
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		apierrors.Internal(w, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
