// Package handler exposes the scheduling API over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// RegisterRoutes registers employee routes
func (h *EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
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

type employeeRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string  `json:"last_name" validate:"required,min=1,max=100"`
	Color     string  `json:"color" validate:"omitempty,hexcolor"`
	UserID    *string `json:"user_id" validate:"omitempty,uuid"`
}

// Create handles POST /employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	employee := &repository.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Color:     req.Color,
		UserID:    req.UserID,
	}
	if err := h.employeeService.Create(r.Context(), employee); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, employee)
}

// Get handles GET /employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// List handles GET /employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employees)
}

// Update handles PUT /employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	employee := &repository.Employee{
		ID:        chi.URLParam(r, "id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Color:     req.Color,
		UserID:    req.UserID,
	}
	if err := h.employeeService.Update(r.Context(), employee); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// Delete handles DELETE /employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
