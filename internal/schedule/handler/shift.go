package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// ShiftHandler handles shift endpoints
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// RegisterRoutes registers shift routes. Reads are open to any
// authenticated user; mutations require the admin role.
func (h *ShiftHandler) RegisterRoutes(r chi.Router) {
	r.Route("/shifts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

type shiftRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string  `json:"end_time" validate:"required,datetime=15:04"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
	Status     string  `json:"status" validate:"omitempty,oneof=draft published"`
}

func (req *shiftRequest) toShift() *repository.Shift {
	return &repository.Shift{
		EmployeeID: req.EmployeeID,
		ShiftDate:  req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Notes:      req.Notes,
		Status:     req.Status,
	}
}

// Create handles POST /shifts
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	shift := req.toShift()
	if err := h.shiftService.Create(r.Context(), shift); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, shift)
}

// Get handles GET /shifts/{id}. Employee-role users can only read
// their own shifts.
func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if who := actor.FromContext(r.Context()); who != nil && !who.IsAdmin() {
		if who.EmployeeID == nil || *who.EmployeeID != shift.EmployeeID {
			httputil.Error(w, errors.Forbidden("shift belongs to another employee"))
			return
		}
	}

	httputil.JSON(w, http.StatusOK, shift)
}

// List handles GET /shifts with optional employee_id, start_date,
// end_date and status query filters. Employee-role users always get
// their own shifts regardless of the filter.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.ShiftListParams{}
	if who := actor.FromContext(r.Context()); who != nil && !who.IsAdmin() {
		if who.EmployeeID == nil {
			httputil.Error(w, errors.BadRequest("account is not linked to an employee"))
			return
		}
		params.EmployeeID = who.EmployeeID
	} else if v := r.URL.Query().Get("employee_id"); v != "" {
		params.EmployeeID = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		params.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		params.EndDate = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		params.Status = &v
	}

	shifts, err := h.shiftService.List(r.Context(), params)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, shifts)
}

// Update handles PUT /shifts/{id}
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	shift := req.toShift()
	shift.ID = chi.URLParam(r, "id")
	if err := h.shiftService.Update(r.Context(), shift); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, shift)
}

// Delete handles DELETE /shifts/{id}
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
