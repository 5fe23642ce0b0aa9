// Package port exposes the clock control surface: a JSON HTTP API for
// synchronization and queries, and a WebSocket stream for clock events.
// Handlers translate requests into app-layer calls and map errors via
// errmap; no clock logic lives here.
package port

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/quartzless/softrtc/internal/auth"
	"github.com/quartzless/softrtc/internal/clock/app"
	"github.com/quartzless/softrtc/internal/domain"
	"github.com/quartzless/softrtc/internal/errmap"
)

// clockService is the narrow, consumer-defined interface for the
// operations the handlers require. The *app.ClockService satisfies it.
type clockService interface {
	Set24HourTime(ctx context.Context, hour, minute, second int) error
	SetTime(ctx context.Context, hour, minute, second int, m domain.Meridian) error
	SetDate(ctx context.Context, month, day, year int) error
	AdvanceBy(ctx context.Context, amount int64, unit domain.TimeUnit) error
	Time(ctx context.Context, f domain.TimeFormat) (string, error)
	Date(ctx context.Context, f domain.DateFormat) (string, error)
	DateTime(ctx context.Context) (string, error)
	NumericTime(ctx context.Context, fn func(app.NumericReading)) error
	Status(ctx context.Context) app.Status
	Subscribe() *app.Subscription
	Unsubscribe(*app.Subscription)
}

// Handler serves the clock control surface.
type Handler struct {
	svc          clockService
	validator    *auth.Validator // nil disables auth on mutating endpoints
	tickInterval time.Duration
}

// NewHandler creates a Handler backed by the given ClockService.
func NewHandler(svc *app.ClockService, validator *auth.Validator, tickInterval time.Duration) *Handler {
	if tickInterval <= 0 {
		tickInterval = domain.DefaultPollInterval
	}
	return &Handler{svc: svc, validator: validator, tickInterval: tickInterval}
}

// Register mounts all routes on the mux. Mutating endpoints go through
// the auth guard; queries and the stream are read-only and open.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/time", h.getTime)
	mux.HandleFunc("GET /api/v1/date", h.getDate)
	mux.HandleFunc("GET /api/v1/datetime", h.getDateTime)
	mux.HandleFunc("GET /api/v1/now", h.getNow)
	mux.HandleFunc("GET /api/v1/status", h.getStatus)
	mux.HandleFunc("GET /api/v1/stream", h.handleStream)

	mux.Handle("POST /api/v1/time", h.requireAuth(http.HandlerFunc(h.setTime)))
	mux.Handle("POST /api/v1/date", h.requireAuth(http.HandlerFunc(h.setDate)))
	mux.Handle("POST /api/v1/advance", h.requireAuth(http.HandlerFunc(h.advance)))
}

type setTimeRequest struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Second int    `json:"second"`
	// Meridian selects 12-hour semantics when present ("am" or "pm");
	// absent means a 24-hour reading.
	Meridian string `json:"meridian,omitempty"`
}

type setDateRequest struct {
	Month int `json:"month"`
	Day   int `json:"day"`
	Year  int `json:"year"`
}

type advanceRequest struct {
	Amount int64  `json:"amount"`
	Unit   string `json:"unit"`
}

type stringResponse struct {
	Value string `json:"value"`
}

type nowResponse struct {
	Hour        int    `json:"hour"`
	Minute      int    `json:"minute"`
	Second      int    `json:"second"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
	Day         int    `json:"day"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	DayOfYear   int    `json:"day_of_year"`
}

type statusResponse struct {
	BootID            string `json:"boot_id"`
	ElapsedSeconds    int64  `json:"elapsed_seconds"`
	ReferenceYear     int    `json:"reference_year"`
	SecondsIntoYear   int64  `json:"seconds_into_year"`
	ElapsedAtSetpoint int64  `json:"elapsed_at_setpoint"`
	Anomalies         int64  `json:"anomalies"`
}

func (h *Handler) getTime(w http.ResponseWriter, r *http.Request) {
	format := domain.TimeFormat24Hour
	if q := r.URL.Query().Get("format"); q != "" {
		format = domain.TimeFormat(q)
	}
	value, err := h.svc.Time(r.Context(), format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stringResponse{Value: value})
}

func (h *Handler) getDate(w http.ResponseWriter, r *http.Request) {
	format := domain.DateFormatISO
	if q := r.URL.Query().Get("format"); q != "" {
		format = domain.DateFormat(q)
	}
	value, err := h.svc.Date(r.Context(), format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stringResponse{Value: value})
}

func (h *Handler) getDateTime(w http.ResponseWriter, r *http.Request) {
	value, err := h.svc.DateTime(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stringResponse{Value: value})
}

func (h *Handler) getNow(w http.ResponseWriter, r *http.Request) {
	var resp nowResponse
	err := h.svc.NumericTime(r.Context(), func(n app.NumericReading) {
		resp = nowResponse{
			Hour:        n.Hour,
			Minute:      n.Minute,
			Second:      n.Second,
			Weekday:     int(n.Weekday),
			WeekdayName: n.Weekday.String(),
			Day:         n.Day,
			Month:       n.Month,
			Year:        n.Year,
			DayOfYear:   n.DayOfYear,
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Status(r.Context())
	writeJSON(w, http.StatusOK, statusResponse{
		BootID:            st.BootID,
		ElapsedSeconds:    st.ElapsedSeconds,
		ReferenceYear:     st.Setpoint.ReferenceYear,
		SecondsIntoYear:   st.Setpoint.SecondsIntoYear,
		ElapsedAtSetpoint: st.Setpoint.ElapsedAtSetpoint,
		Anomalies:         st.Anomalies,
	})
}

func (h *Handler) setTime(w http.ResponseWriter, r *http.Request) {
	var req setTimeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var err error
	if req.Meridian != "" {
		err = h.svc.SetTime(r.Context(), req.Hour, req.Minute, req.Second, domain.Meridian(req.Meridian))
	} else {
		err = h.svc.Set24HourTime(r.Context(), req.Hour, req.Minute, req.Second)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setDate(w http.ResponseWriter, r *http.Request) {
	var req setDateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.SetDate(r.Context(), req.Month, req.Day, req.Year); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.AdvanceBy(r.Context(), req.Amount, domain.TimeUnit(req.Unit)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireAuth validates the bearer token on mutating endpoints. A nil
// validator means auth is disabled (trusted local interface).
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	if h.validator == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		if err := h.validator.Validate(token); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken extracts the bearer token from the Authorization
// header.
func extractBearerToken(r *http.Request) string {
	val := r.Header.Get("Authorization")
	if val == "" {
		return ""
	}
	const prefix = "Bearer "
	if strings.HasPrefix(val, prefix) {
		return val[len(prefix):]
	}
	return val
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errmap.HTTPError{
			Code:    "INVALID_BODY",
			Message: "malformed JSON request body",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := errmap.ToHTTPError(err)
	writeJSON(w, httpErr.StatusCode, httpErr)
}
