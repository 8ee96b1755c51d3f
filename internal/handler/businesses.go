package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterline/backend/internal/domain"
)

func (h *Handler) GetAllBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.repository.GetAllBusinesses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched business list", businesses)
}

func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"required"`
		State string `json:"state" validate:"required,len=2,alpha"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := strings.ToUpper(req.State)
	zone, err := h.schedules.Timezones().Resolve(state)
	if err != nil {
		h.badRequest(w, r, errors.New("unknown state code"))
		return
	}

	business := &domain.Business{
		Name:     req.Name,
		State:    state,
		Timezone: zone.Zone,
	}

	if err := h.repository.CreateBusiness(business); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "businesses_name_key":
				h.badRequest(w, r, errors.New("a business with this name already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "business created", business)
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	h.successResponse(w, r, "fetched business", business)
}
