package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uniform-shop-api/internal/application/auth"
	"github.com/uniform-shop-api/internal/pkg/validate"
	"github.com/uniform-shop-api/internal/transport/http/middleware"
)

// InviteHandler handles supplier invitation creation and acceptance.
type InviteHandler struct {
	svc auth.Service
}

func NewInviteHandler(svc auth.Service) *InviteHandler {
	return &InviteHandler{svc: svc}
}

// Create issues a new supplier invite. Admin-only. When no email binding is
// given the raw token is returned for out-of-band distribution; otherwise it
// is delivered by email and not echoed back.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req auth.InviteOptions
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	raw, err := h.svc.CreateInvite(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if req.Email != nil {
		writeJSON(w, http.StatusCreated, InviteEnvelope{Message: "invite sent"})
		return
	}
	writeJSON(w, http.StatusCreated, InviteEnvelope{Token: raw})
}

func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req confirmTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	res, err := h.svc.AcceptInvite(r.Context(), req.Token, claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	if res.SupplierID != nil {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "supplier access granted"})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "supplier access granted, profile setup required"})
}
