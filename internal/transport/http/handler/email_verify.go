package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uniform-shop-api/internal/application/auth"
	"github.com/uniform-shop-api/internal/pkg/validate"
)

// EmailVerifyHandler handles the email verification flow endpoints.
type EmailVerifyHandler struct {
	svc auth.Service
}

func NewEmailVerifyHandler(svc auth.Service) *EmailVerifyHandler {
	return &EmailVerifyHandler{svc: svc}
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type confirmTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *EmailVerifyHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "resend":
		var req resendVerificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		outcome, err := h.svc.ResendVerification(r.Context(), req.Email)
		if err != nil {
			httpError(w, err)
			return
		}
		// Sent and no-account share a response; only already-verified may
		// differ observably.
		if outcome == auth.OutcomeAlreadyVerified {
			writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email already verified"})
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "if the address is registered, a verification email has been sent"})
	case "confirm":
		var req confirmTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc.ConfirmEmail(r.Context(), req.Token); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
