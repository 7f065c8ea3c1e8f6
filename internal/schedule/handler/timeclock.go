package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// TimeclockHandler handles clock in/out endpoints
type TimeclockHandler struct {
	timeclockService *service.TimeclockService
}

// NewTimeclockHandler creates a new timeclock handler
func NewTimeclockHandler(timeclockService *service.TimeclockService) *TimeclockHandler {
	return &TimeclockHandler{timeclockService: timeclockService}
}

// RegisterRoutes registers timeclock routes
func (h *TimeclockHandler) RegisterRoutes(r chi.Router) {
	r.Route("/time-entries", func(r chi.Router) {
		r.Post("/clock-in", h.ClockIn)
		r.Post("/clock-out", h.ClockOut)
		r.Get("/", h.List)
	})
}

// resolveEmployeeID decides which employee a clock request acts on.
// Employees always act on themselves; admins may pass employee_id to act
// on someone else's behalf.
func resolveEmployeeID(r *http.Request) (string, error) {
	who := actor.FromContext(r.Context())
	if who == nil {
		return "", errors.Unauthorized("authentication required")
	}

	if who.IsAdmin() {
		if v := r.URL.Query().Get("employee_id"); v != "" {
			return v, nil
		}
	}

	if who.EmployeeID == nil {
		return "", errors.BadRequest("account is not linked to an employee")
	}
	return *who.EmployeeID, nil
}

// ClockIn handles POST /time-entries/clock-in
func (h *TimeclockHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := resolveEmployeeID(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	entry, err := h.timeclockService.ClockIn(r.Context(), employeeID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, entry)
}

// ClockOut handles POST /time-entries/clock-out
func (h *TimeclockHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := resolveEmployeeID(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	entry, err := h.timeclockService.ClockOut(r.Context(), employeeID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, entry)
}

// List handles GET /time-entries. Employees see only their own entries;
// admins may filter by employee_id, start_date and end_date.
func (h *TimeclockHandler) List(w http.ResponseWriter, r *http.Request) {
	who := actor.FromContext(r.Context())
	if who == nil {
		httputil.Error(w, errors.Unauthorized("authentication required"))
		return
	}

	params := repository.TimeEntryListParams{}
	if who.IsAdmin() {
		if v := r.URL.Query().Get("employee_id"); v != "" {
			params.EmployeeID = &v
		}
	} else {
		if who.EmployeeID == nil {
			httputil.Error(w, errors.BadRequest("account is not linked to an employee"))
			return
		}
		params.EmployeeID = who.EmployeeID
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		params.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		params.EndDate = &v
	}

	entries, err := h.timeclockService.List(r.Context(), params)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, entries)
}
