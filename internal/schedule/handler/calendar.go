package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// CalendarHandler handles calendar view and hours report endpoints
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// RegisterRoutes registers calendar routes
func (h *CalendarHandler) RegisterRoutes(r chi.Router) {
	r.Route("/calendar", func(r chi.Router) {
		r.Get("/month", h.MonthView)
		r.Get("/week", h.WeekView)
	})
	r.Route("/hours", func(r chi.Router) {
		r.Get("/week", h.WeekHours)
		r.Get("/month", h.MonthHours)
	})
}

// yearMonthParams reads the year and zero-based month query parameters.
func yearMonthParams(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, errors.BadRequest("year must be an integer")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, errors.BadRequest("month must be an integer between 0 and 11")
	}

	return year, month, nil
}

// MonthView handles GET /calendar/month?year=2024&month=0
func (h *CalendarHandler) MonthView(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthParams(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	days, err := h.calendarService.MonthView(r.Context(), year, month)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, days)
}

// WeekView handles GET /calendar/week?date=2024-01-03
func (h *CalendarHandler) WeekView(w http.ResponseWriter, r *http.Request) {
	days, err := h.calendarService.WeekView(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, days)
}

// WeekHours handles GET /hours/week?date=2024-01-03
func (h *CalendarHandler) WeekHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.calendarService.WeekHours(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, hours)
}

// MonthHours handles GET /hours/month?year=2024&month=0
func (h *CalendarHandler) MonthHours(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthParams(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	hours, err := h.calendarService.MonthHours(r.Context(), year, month)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, hours)
}
