package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uniform-shop-api/internal/application/supplier"
	"github.com/uniform-shop-api/internal/domain"
	"github.com/uniform-shop-api/internal/pkg/validate"
)

// SupplierHandler handles supplier profile management. Creation is admin-only;
// invites are bound to profiles created here.
type SupplierHandler struct {
	svc supplier.Service
}

func NewSupplierHandler(svc supplier.Service) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	sup, err := h.svc.Create(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	sup, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}
