// Package api provides HTTP API handlers for the chhaya overlay server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/chhaya/internal/render"
	"github.com/ayusman/chhaya/internal/store"
)

// ProfileHandler handles HTTP requests for render settings profiles.
type ProfileHandler struct {
	store      *store.Store
	onSettings func(render.Settings)
}

// NewProfileHandler creates a new ProfileHandler. onSettings may be nil;
// when set, it is called with the settings of any profile that is activated.
func NewProfileHandler(s *store.Store, onSettings func(render.Settings)) *ProfileHandler {
	return &ProfileHandler{store: s, onSettings: onSettings}
}

// ServeHTTP routes profile requests.
// Paths: /api/profiles, /api/profiles/{id}, /api/profiles/{id}/activate.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// profileRequest is the create/update payload. Settings fields not supplied
// fall back to the defaults.
type profileRequest struct {
	Name     string           `json:"name"`
	Settings *render.Settings `json:"settings"`
}

func (req *profileRequest) settings() render.Settings {
	if req.Settings == nil {
		return render.DefaultSettings()
	}
	return *req.Settings
}

func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if profiles == nil {
		profiles = []*store.Profile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Profile name is required", http.StatusBadRequest)
		return
	}

	profile, err := h.store.Profiles().Create(req.Name, req.settings())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().Get(id)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Profile name is required", http.StatusBadRequest)
		return
	}

	profile, err := h.store.Profiles().Update(id, req.Name, req.settings())
	if err != nil {
		writeProfileError(w, err)
		return
	}

	// An update to the active profile takes effect immediately.
	if profile.Active && h.onSettings != nil {
		h.onSettings(profile.Settings)
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		writeProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().Activate(id)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	if h.onSettings != nil {
		h.onSettings(profile.Settings)
	}

	writeJSON(w, http.StatusOK, profile)
}

func writeProfileError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrProfileNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
