package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// TemplateHandler handles shift template and week template endpoints
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// RegisterRoutes registers template routes
func (h *TemplateHandler) RegisterRoutes(r chi.Router) {
	r.Route("/shift-templates", func(r chi.Router) {
		r.Get("/", h.ListShiftTemplates)
		r.Get("/{id}", h.GetShiftTemplate)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", h.CreateShiftTemplate)
			r.Put("/{id}", h.UpdateShiftTemplate)
			r.Delete("/{id}", h.DeleteShiftTemplate)
		})
	})

	r.Route("/week-templates", func(r chi.Router) {
		r.Get("/", h.ListWeekTemplates)
		r.Get("/{id}", h.GetWeekTemplate)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", h.CreateWeekTemplate)
			r.Post("/capture", h.CaptureWeekTemplate)
			r.Post("/{id}/apply", h.ApplyWeekTemplate)
			r.Delete("/{id}", h.DeleteWeekTemplate)
		})
	})
}

type shiftTemplateRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	StartTime  string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string  `json:"end_time" validate:"required,datetime=15:04"`
	DaysOfWeek []int64 `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
}

// CreateShiftTemplate handles POST /shift-templates
func (h *TemplateHandler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req shiftTemplateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	tpl := &repository.ShiftTemplate{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		DaysOfWeek: pq.Int64Array(req.DaysOfWeek),
	}
	if err := h.templateService.CreateShiftTemplate(r.Context(), tpl); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, tpl)
}

// GetShiftTemplate handles GET /shift-templates/{id}
func (h *TemplateHandler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templateService.GetShiftTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tpl)
}

// ListShiftTemplates handles GET /shift-templates
func (h *TemplateHandler) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.ListShiftTemplates(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, templates)
}

// UpdateShiftTemplate handles PUT /shift-templates/{id}
func (h *TemplateHandler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req shiftTemplateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	tpl := &repository.ShiftTemplate{
		ID:         chi.URLParam(r, "id"),
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		DaysOfWeek: pq.Int64Array(req.DaysOfWeek),
	}
	if err := h.templateService.UpdateShiftTemplate(r.Context(), tpl); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tpl)
}

// DeleteShiftTemplate handles DELETE /shift-templates/{id}
func (h *TemplateHandler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templateService.DeleteShiftTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

type weekTemplateShiftRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string  `json:"end_time" validate:"required,datetime=15:04"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
}

type createWeekTemplateRequest struct {
	Name        string                     `json:"name" validate:"required,min=1,max=100"`
	Description string                     `json:"description" validate:"omitempty,max=500"`
	StartDate   string                     `json:"start_date" validate:"required,datetime=2006-01-02"`
	Shifts      []weekTemplateShiftRequest `json:"shifts" validate:"required,min=1,dive"`
}

// CreateWeekTemplate handles POST /week-templates
func (h *TemplateHandler) CreateWeekTemplate(w http.ResponseWriter, r *http.Request) {
	var req createWeekTemplateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	tpl := &repository.WeekTemplate{
		Name:      req.Name,
		StartDate: req.StartDate,
	}
	if req.Description != "" {
		tpl.Description = &req.Description
	}
	for _, shift := range req.Shifts {
		tpl.Shifts = append(tpl.Shifts, &repository.WeekTemplateShift{
			EmployeeID: shift.EmployeeID,
			ShiftDate:  shift.Date,
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
			Notes:      shift.Notes,
		})
	}

	if err := h.templateService.CreateWeekTemplate(r.Context(), tpl); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, tpl)
}

type captureWeekTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// CaptureWeekTemplate handles POST /week-templates/capture
func (h *TemplateHandler) CaptureWeekTemplate(w http.ResponseWriter, r *http.Request) {
	var req captureWeekTemplateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	tpl, err := h.templateService.CaptureWeekTemplate(r.Context(), req.Name, req.Description, req.Date)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, tpl)
}

// GetWeekTemplate handles GET /week-templates/{id}
func (h *TemplateHandler) GetWeekTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templateService.GetWeekTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, tpl)
}

// ListWeekTemplates handles GET /week-templates
func (h *TemplateHandler) ListWeekTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.ListWeekTemplates(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, templates)
}

type applyWeekTemplateRequest struct {
	TargetDate string `json:"target_date" validate:"required,datetime=2006-01-02"`
}

// ApplyWeekTemplate handles POST /week-templates/{id}/apply
func (h *TemplateHandler) ApplyWeekTemplate(w http.ResponseWriter, r *http.Request) {
	var req applyWeekTemplateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.templateService.ApplyWeekTemplate(r.Context(), chi.URLParam(r, "id"), req.TargetDate)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// DeleteWeekTemplate handles DELETE /week-templates/{id}
func (h *TemplateHandler) DeleteWeekTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templateService.DeleteWeekTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
