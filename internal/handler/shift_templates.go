package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/scheduling"
)

func (h *Handler) decorateTemplate(tpl *domain.ShiftTemplate) {
	tpl.StartLabel = scheduling.MinuteOfDay(tpl.StartMinute).Label()
	tpl.EndLabel = scheduling.MinuteOfDay(tpl.EndMinute).Label()
}

func (h *Handler) GetShiftTemplates(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	templates, err := h.repository.GetShiftTemplatesByBusiness(business.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	for _, tpl := range templates {
		h.decorateTemplate(tpl)
	}

	h.successResponse(w, r, "fetched shift templates", templates)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.decorateTemplate(tpl)
	h.successResponse(w, r, "fetched shift template", tpl)
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		Name      string               `json:"name" validate:"required"`
		StartTime scheduling.TimeInput `json:"startTime"`
		EndTime   scheduling.TimeInput `json:"endTime"`
		Color     string               `json:"color"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.StartTime.IsSet() || !req.EndTime.IsSet() {
		h.badRequest(w, r, errors.New("startTime and endTime are required"))
		return
	}

	tpl := &domain.ShiftTemplate{
		BusinessID:  business.ID,
		Name:        req.Name,
		StartMinute: int(req.StartTime.Minute()),
		EndMinute:   int(req.EndTime.Minute()),
		Color:       req.Color,
		IsActive:    true,
	}

	if err := h.repository.CreateShiftTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "shift_templates_business_id_name_key":
				h.badRequest(w, r, errors.New("a template with this name already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.decorateTemplate(tpl)
	h.successResponse(w, r, "shift template created", tpl)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req struct {
		Name      *string               `json:"name"`
		StartTime *scheduling.TimeInput `json:"startTime"`
		EndTime   *scheduling.TimeInput `json:"endTime"`
		Color     *string               `json:"color"`
		IsActive  *bool                 `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.StartTime != nil && req.StartTime.IsSet() {
		tpl.StartMinute = int(req.StartTime.Minute())
	}
	if req.EndTime != nil && req.EndTime.IsSet() {
		tpl.EndMinute = int(req.EndTime.Minute())
	}
	if req.Color != nil {
		tpl.Color = *req.Color
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateShiftTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "template was modified concurrently, please retry")
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "shift_templates_business_id_name_key":
				h.badRequest(w, r, errors.New("a template with this name already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.decorateTemplate(tpl)
	h.successResponse(w, r, "shift template updated", tpl)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	// shifts referencing the template keep their times; the FK nulls out
	if err := h.repository.DeleteShiftTemplate(tpl.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift template deleted", nil)
}
