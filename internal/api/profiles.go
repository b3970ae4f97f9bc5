package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
	"github.com/zapponejosh/kigaku-api/internal/database"
)

// profileInput is the request body for creating or replacing a profile.
type profileInput struct {
	Name               string `json:"name"`
	Gender             string `json:"gender"`
	BirthAt            string `json:"birth_at"`
	Prefecture         string `json:"prefecture"`
	Municipality       string `json:"municipality"`
	LocationPermission bool   `json:"location_permission"`
}

func (in profileInput) profile() (*database.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if in.BirthAt == "" {
		return nil, errors.New("birth_at is required")
	}
	birth, err := calendar.ParseInstant(in.BirthAt)
	if err != nil {
		return nil, fmt.Errorf("invalid birth_at: %s", in.BirthAt)
	}

	return &database.Profile{
		Name:               name,
		Gender:             strings.TrimSpace(in.Gender),
		BirthAt:            birth,
		Prefecture:         strings.TrimSpace(in.Prefecture),
		Municipality:       strings.TrimSpace(in.Municipality),
		LocationPermission: in.LocationPermission,
	}, nil
}

// CreateProfile handles POST /api/v1/profiles
func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	p, err := in.profile()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if err := h.db.CreateProfile(r.Context(), p); err != nil {
		h.logger.Error("failed to create profile", slog.Any("error", err))
		WriteInternalError(w, "Failed to create profile")
		return
	}

	WriteCreated(w, p)
}

// ListProfiles handles GET /api/v1/profiles
func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)

	profiles, err := h.db.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list profiles", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve profiles")
		return
	}
	if profiles == nil {
		profiles = []database.Profile{}
	}

	WriteSuccess(w, Page[database.Profile]{Items: profiles, Limit: limit, Offset: offset})
}

// loadProfile fetches the {id} profile, writing the error response itself
// when it returns nil.
func (h *Handlers) loadProfile(w http.ResponseWriter, r *http.Request) *database.Profile {
	id, err := parseID(r, "id")
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID")
		return nil
	}

	p, err := h.db.GetProfile(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Profile not found")
			return nil
		}
		h.logger.Error("failed to get profile", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve profile")
		return nil
	}
	return p
}

// GetProfile handles GET /api/v1/profiles/{id}
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p := h.loadProfile(w, r)
	if p == nil {
		return
	}
	WriteSuccess(w, p)
}

// UpdateProfile handles PUT /api/v1/profiles/{id}
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID")
		return
	}

	var in profileInput
	if err := decodeJSON(r, &in); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	p, err := in.profile()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	p.ID = id

	if err := h.db.UpdateProfile(r.Context(), p); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Profile not found")
			return
		}
		h.logger.Error("failed to update profile", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to update profile")
		return
	}

	// Re-read for created_at.
	updated, err := h.db.GetProfile(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to reload profile", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}
	WriteSuccess(w, updated)
}

// DeleteProfile handles DELETE /api/v1/profiles/{id}
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID")
		return
	}

	if err := h.db.DeleteProfile(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Profile not found")
			return
		}
		h.logger.Error("failed to delete profile", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete profile")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Profile deleted"})
}

// GetProfileKigaku handles GET /api/v1/profiles/{id}/kigaku
func (h *Handlers) GetProfileKigaku(w http.ResponseWriter, r *http.Request) {
	p := h.loadProfile(w, r)
	if p == nil {
		return
	}

	WriteSuccess(w, map[string]any{
		"profile_id": p.ID,
		"kigaku":     h.compute(r, p.BirthAt),
	})
}
