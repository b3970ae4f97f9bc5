package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
	"github.com/zapponejosh/kigaku-api/internal/config"
	"github.com/zapponejosh/kigaku-api/internal/database"
	"github.com/zapponejosh/kigaku-api/internal/kigaku"
	"github.com/zapponejosh/kigaku-api/internal/reading"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	calc     *kigaku.Calculator
	table    *sekki.Table
	readings *reading.Service
	cfg      *config.Config
	logger   *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	db *database.DB,
	table *sekki.Table,
	readings *reading.Service,
	cfg *config.Config,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		db:       db,
		calc:     kigaku.New(table, kigaku.WithLogger(logger)),
		table:    table,
		readings: readings,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.db.Health(ctx)
	if err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":      "healthy",
		"sekki_years": len(h.table.Years()),
		"database":    stats,
	})
}

// kigakuResponse is a star result together with the instant it was
// computed for.
type kigakuResponse struct {
	Birth    string `json:"birth"`
	Language string `json:"language"`
	kigaku.Result
}

func (h *Handlers) compute(r *http.Request, birth time.Time) kigakuResponse {
	lang := Language(r)
	return kigakuResponse{
		Birth:    calendar.FormatInstant(birth),
		Language: lang,
		Result:   h.calc.Compute(birth).WithLanguage(lang),
	}
}

// GetKigaku handles GET /api/v1/kigaku?birth=
func (h *Handlers) GetKigaku(w http.ResponseWriter, r *http.Request) {
	birthStr := r.URL.Query().Get("birth")
	if birthStr == "" {
		WriteBadRequest(w, "birth parameter is required")
		return
	}

	birth, err := calendar.ParseInstant(birthStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid birth: %s. Use RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD", birthStr))
		return
	}

	WriteSuccess(w, h.compute(r, birth))
}

// GetDayStar handles GET /api/v1/daystar/{date}
func (h *Handlers) GetDayStar(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	star := kigaku.DayStar(date)
	WriteSuccess(w, map[string]any{
		"date": calendar.FormatDate(date),
		"star": star,
		"name": kigaku.NameIn(Language(r), star),
	})
}

// termView is the wire form of a sekki.Instant.
type termView struct {
	Term  string `json:"term"`
	Kanji string `json:"kanji"`
	Month int    `json:"month"`
	At    string `json:"at"`
}

func newTermView(in sekki.Instant) termView {
	return termView{
		Term:  in.Term.String(),
		Kanji: in.Term.Kanji(),
		Month: in.Term.Month(),
		At:    calendar.FormatInstant(in.Time),
	}
}

// GetSekkiYear handles GET /api/v1/sekki/{year}
//
// A year missing from the table is not an error: terms is empty and
// year_start is the February 4th approximation.
func (h *Handlers) GetSekkiYear(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 || year > 9999 {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}

	instants := h.table.TermsForYear(year)
	terms := make([]termView, 0, len(instants))
	for _, in := range instants {
		terms = append(terms, newTermView(in))
	}

	years := h.calc.Years()
	WriteSuccess(w, map[string]any{
		"year":       year,
		"year_start": calendar.FormatInstant(years.YearStart(year)),
		"fallback":   years.IsFallback(year),
		"terms":      terms,
	})
}

// GetLatestSekki handles GET /api/v1/sekki/latest?at=
func (h *Handlers) GetLatestSekki(w http.ResponseWriter, r *http.Request) {
	at := h.now()
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := calendar.ParseInstant(atStr)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid at: %s", atStr))
			return
		}
		at = parsed
	}

	latest, ok := h.table.LatestAtOrBefore(at)
	if !ok {
		WriteNotFound(w, "No solar term at or before the given instant")
		return
	}

	WriteSuccess(w, map[string]any{
		"at":   calendar.FormatInstant(at),
		"term": newTermView(latest),
	})
}

// parseID reads a positive int64 URL parameter.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parsePage reads limit and offset, ignoring out of range values.
func parsePage(r *http.Request) (limit, offset int) {
	limit = 50 // default

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
