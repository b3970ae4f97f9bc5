package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/zapponejosh/kigaku-api/internal/database"
	"github.com/zapponejosh/kigaku-api/internal/reading"
)

// CreateReading handles POST /api/v1/profiles/{id}/readings
func (h *Handlers) CreateReading(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if !reading.ValidCategory(req.Category) {
		WriteBadRequest(w, fmt.Sprintf("category must be one of: %s", strings.Join(reading.Categories, ", ")))
		return
	}

	p := h.loadProfile(w, r)
	if p == nil {
		return
	}

	stars := h.compute(r, p.BirthAt)
	region := reading.UnknownRegion
	if p.LocationPermission {
		region = reading.Region(p.Prefecture, p.Municipality)
	}

	text := h.readings.Generate(ctx, reading.Request{
		Category: req.Category,
		Message:  strings.TrimSpace(req.Message),
		Honmei:   stars.HonmeiName,
		Getsumei: stars.GetsumeiName,
		Region:   region,
		Language: stars.Language,
	})

	rd := &database.Reading{
		ProfileID:      p.ID,
		Category:       req.Category,
		Message:        strings.TrimSpace(req.Message),
		ResponseText:   text,
		Honmei:         stars.Honmei,
		HonmeiName:     stars.HonmeiName,
		Getsumei:       stars.Getsumei,
		GetsumeiName:   stars.GetsumeiName,
		RegionSnapshot: region,
	}
	if err := h.db.CreateReading(ctx, rd); err != nil {
		if errors.Is(err, database.ErrUnknownProfile) {
			WriteNotFound(w, "Profile not found")
			return
		}
		h.logger.Error("failed to create reading", slog.Int64("profile_id", p.ID), slog.Any("error", err))
		WriteInternalError(w, "Failed to save reading")
		return
	}

	WriteCreated(w, rd)
}

// ListReadings handles GET /api/v1/readings?profile_id=&limit=&offset=
func (h *Handlers) ListReadings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	filter := database.ReadingFilter{Limit: limit, Offset: offset}

	if s := r.URL.Query().Get("profile_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			WriteBadRequest(w, "Invalid profile_id")
			return
		}
		filter.ProfileID = id
	}

	readings, err := h.db.ListReadings(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list readings", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve readings")
		return
	}
	if readings == nil {
		readings = []database.Reading{}
	}

	WriteSuccess(w, Page[database.Reading]{Items: readings, Limit: limit, Offset: offset})
}

// GetReading handles GET /api/v1/readings/{id}
func (h *Handlers) GetReading(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteBadRequest(w, "Invalid reading ID")
		return
	}

	rd, err := h.db.GetReading(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Reading not found")
			return
		}
		h.logger.Error("failed to get reading", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve reading")
		return
	}

	WriteSuccess(w, rd)
}

// DeleteReading handles DELETE /api/v1/readings/{id}
func (h *Handlers) DeleteReading(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteBadRequest(w, "Invalid reading ID")
		return
	}

	if err := h.db.DeleteReading(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Reading not found")
			return
		}
		h.logger.Error("failed to delete reading", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete reading")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Reading deleted"})
}
