package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
)

// login returns the sign-in handler of role. Every role has its own
// endpoint and its own accounts.
func (h *Handler) login(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			utils.WriteError(w, errInvalidJSON.Error(), http.StatusBadRequest)
			return
		}

		user, err := h.backend.Authenticate(ctx, role, creds)
		if err != nil {
			log.Err(err).Str("role", string(role)).Msg("login rejected")
			writeBackendError(w, r, err)
			return
		}

		token, err := utils.GenerateJWTToken(h.cfg.TokenIssuer, user.ID, role, user.DisplayName(),
			h.cfg.TokenDuration, h.cfg.TokenSignKey)
		if err != nil {
			log.Err(err).Msg("creation of token failed")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		log.Debug().Str("id", user.ID).Str("role", string(role)).Msg("user successfully logged in")
		utils.WriteEnvelope(w, models.LoginResult{Token: token, User: user}, http.StatusOK)
	}
}

type healthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteEnvelope(w, healthStatus{Status: "ok", Version: h.cfg.Version}, http.StatusOK)
}

// viewer is the caller as the backend sees it. Only valid behind auth.
func viewer(r *http.Request) backend.Viewer {
	claims, _ := utils.GetClaimsFromContext(r.Context())
	if claims == nil {
		return backend.Viewer{}
	}
	return backend.Viewer{UserID: claims.Subject, Name: claims.Name, Role: claims.Role}
}
