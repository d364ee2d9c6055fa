package update

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/apierrors"
	"github.com/agencydesk/api-agency/internal/validation"
)

type CreateRequest struct {
	Title    string     `json:"title" validate:"required"`
	Message  string     `json:"message" validate:"required"`
	Type     string     `json:"type" validate:"omitempty,oneof=announcement system training marketing resources"`
	Date     *time.Time `json:"date"`
	Link     string     `json:"link"`
	LinkText string     `json:"linkText"`
}

type UpdateRequest struct {
	Title    *string    `json:"title" validate:"omitempty,min=1"`
	Message  *string    `json:"message" validate:"omitempty,min=1"`
	Type     *string    `json:"type" validate:"omitempty,oneof=announcement system training marketing resources"`
	Date     *time.Time `json:"date"`
	Link     *string    `json:"link"`
	LinkText *string    `json:"linkText"`
}

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
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

	u := Update{
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Link:     req.Link,
		LinkText: req.LinkText,
		Date:     time.Now(),
	}
	if u.Type == "" {
		u.Type = "announcement"
	}
	if req.Date != nil {
		u.Date = *req.Date
	}

	if err := h.DB.Create(&u).Error; err != nil {
		apierrors.Internal(w, "failed to save update")
		return
	}
	apierrors.JSON(w, http.StatusCreated, u)
}

// List handles GET /updates, newest first, optionally filtered by type.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("date DESC")
	if t := r.URL.Query().Get("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var list []Update
	if err := q.Find(&list).Error; err != nil {
		apierrors.Internal(w, "failed to list updates")
		return
	}
	if list == nil {
		list = []Update{}
	}
	apierrors.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid update id")
		return
	}
	var u Update
	if err := h.DB.First(&u, id).Error; err != nil {
		apierrors.NotFound(w, "update not found")
		return
	}
	apierrors.JSON(w, http.StatusOK, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid update id")
		return
	}
	var u Update
	if err := h.DB.First(&u, id).Error; err != nil {
		apierrors.NotFound(w, "update not found")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.Error(w, http.StatusBadRequest, "malformed JSON")
		return
	}
	if ferr := validation.Struct(req); ferr != nil {
		apierrors.Validation(w, ferr)
		return
	}

	if req.Title != nil {
		u.Title = *req.Title
	}
	if req.Message != nil {
		u.Message = *req.Message
	}
	if req.Type != nil {
		u.Type = *req.Type
	}
	if req.Date != nil {
		u.Date = *req.Date
	}
	if req.Link != nil {
		u.Link = *req.Link
	}
	if req.LinkText != nil {
		u.LinkText = *req.LinkText
	}

	if err := h.DB.Save(&u).Error; err != nil {
		apierrors.Internal(w, "failed to update announcement")
		return
	}
	apierrors.JSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.Error(w, http.StatusBadRequest, "invalid update id")
		return
	}
	var u Update
	if err := h.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		apierrors.Internal(w, "failed to load update")
		return
	}
	if err := h.DB.Delete(&u).Error; err != nil {
		apierrors.Internal(w, "failed to delete update")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
