package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uniform-shop-api/internal/application/auth"
	"github.com/uniform-shop-api/internal/pkg/validate"
	"github.com/uniform-shop-api/internal/transport/http/middleware"
)

// EmailChangeHandler handles the change-of-address flow. Requesting a change
// requires an authenticated session; confirming only requires the token,
// since the link lands on the new address.
type EmailChangeHandler struct {
	svc auth.Service
}

func NewEmailChangeHandler(svc auth.Service) *EmailChangeHandler {
	return &EmailChangeHandler{svc: svc}
}

type requestEmailChangeRequest struct {
	NewEmail string `json:"new_email" validate:"required,email"`
}

func (h *EmailChangeHandler) Request(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req requestEmailChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.RequestEmailChange(r.Context(), claims.UserID, req.NewEmail); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "confirmation sent to the new address"})
}

func (h *EmailChangeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.ConfirmEmailChange(r.Context(), req.Token); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email address updated"})
}
