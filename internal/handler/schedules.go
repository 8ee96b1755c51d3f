package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/schedule"
	"github.com/rosterline/backend/internal/scheduling"
)

// scheduleResponse pairs a schedule with its per-employee hour totals. The
// totals are recomputed from the shifts on every read.
type scheduleResponse struct {
	*domain.WeeklySchedule
	EmployeeHours domain.HoursSummary `json:"employeeHours"`
}

func (h *Handler) respondSchedule(w http.ResponseWriter, r *http.Request, message string, sched *domain.WeeklySchedule) {
	hours, err := h.schedules.EmployeeHours(sched)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, message, scheduleResponse{
		WeeklySchedule: sched,
		EmployeeHours:  hours,
	})
}

func (h *Handler) GetCurrentSchedule(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	sched, err := h.schedules.GetOrCreate(business, h.schedules.CurrentWeekStart(business))
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.respondSchedule(w, r, "fetched current schedule", sched)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)
	h.respondSchedule(w, r, "fetched schedule", sched)
}

type shiftRequest struct {
	EmployeeID int64                `json:"employeeID" validate:"required"`
	Day        *int                 `json:"day" validate:"required"`
	StartTime  scheduling.TimeInput `json:"startTime"`
	EndTime    scheduling.TimeInput `json:"endTime"`
	TemplateID *int64               `json:"templateID"`
	Note       string               `json:"note"`
}

func (req *shiftRequest) toInput() (*schedule.ShiftInput, error) {
	if !req.StartTime.IsSet() || !req.EndTime.IsSet() {
		return nil, scheduling.NewValidationError("startTime and endTime are required")
	}
	day := -1
	if req.Day != nil {
		day = *req.Day
	}
	return &schedule.ShiftInput{
		EmployeeID: req.EmployeeID,
		Day:        day,
		Start:      req.StartTime.Minute(),
		End:        req.EndTime.Minute(),
		TemplateID: req.TemplateID,
		Note:       req.Note,
	}, nil
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	var req shiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	sh, err := h.schedules.AddShift(business, sched, in)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", sh)
}

func (h *Handler) BulkCreateShifts(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	var req struct {
		Shifts []shiftRequest `json:"shifts" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ins := make([]schedule.ShiftInput, len(req.Shifts))
	for i := range req.Shifts {
		in, err := req.Shifts[i].toInput()
		if err != nil {
			h.scheduleError(w, r, scheduling.NewValidationError("shift %d: %s", i+1, err.Error()))
			return
		}
		ins[i] = *in
	}

	shifts, err := h.schedules.BulkAddShifts(business, sched, ins)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts created", shifts)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid shift ID")
		return
	}

	var req struct {
		EmployeeID    *int64                `json:"employeeID"`
		Day           *int                  `json:"day"`
		StartTime     *scheduling.TimeInput `json:"startTime"`
		EndTime       *scheduling.TimeInput `json:"endTime"`
		TemplateID    *int64                `json:"templateID"`
		ClearTemplate bool                  `json:"clearTemplate"`
		Note          *string               `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := &schedule.ShiftPatch{
		EmployeeID:    req.EmployeeID,
		Day:           req.Day,
		TemplateID:    req.TemplateID,
		ClearTemplate: req.ClearTemplate,
		Note:          req.Note,
	}
	if req.StartTime != nil && req.StartTime.IsSet() {
		m := req.StartTime.Minute()
		patch.Start = &m
	}
	if req.EndTime != nil && req.EndTime.IsSet() {
		m := req.EndTime.Minute()
		patch.End = &m
	}

	sh, err := h.schedules.UpdateShift(business, sched, shiftID, patch)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift updated", sh)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid shift ID")
		return
	}

	if err := h.schedules.DeleteShift(business, sched, shiftID); err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) PostSchedule(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Manager)

	wasPosted := sched.IsPosted()

	if err := h.schedules.Post(sched); err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if !wasPosted {
		h.notifySchedulePosted(business, sched, myInfo)
	}

	h.respondSchedule(w, r, "schedule posted", sched)
}

// notifySchedulePosted queues the posted notification. The post itself has
// already committed, so a broker failure is logged and swallowed.
func (h *Handler) notifySchedulePosted(business *domain.Business, sched *domain.WeeklySchedule, manager *domain.Manager) {
	mailMessage := domain.MailMessage{
		Type: "schedule_posted",
		To:   manager.Email,
		Data: domain.SchedulePostedMailData{
			BusinessName: business.Name,
			WeekStart:    sched.WeekStart.String(),
			ShiftCount:   len(sched.Shifts),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Warn("cannot marshal posted notification", "scheduleID", sched.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Warn("cannot queue posted notification", "scheduleID", sched.ID, "error", err)
	}
}

func (h *Handler) UnpostSchedule(w http.ResponseWriter, r *http.Request) {
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	if err := h.schedules.Unpost(sched); err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.respondSchedule(w, r, "schedule reverted to draft", sched)
}

func (h *Handler) ConfirmEmployeeHours(w http.ResponseWriter, r *http.Request) {
	sched := r.Context().Value(ScheduleCtx).(*domain.WeeklySchedule)

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid employee ID")
		return
	}

	var req struct {
		Hours *float64 `json:"hours" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.schedules.ConfirmHours(sched, employeeID, *req.Hours); err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.respondSchedule(w, r, "employee hours confirmed", sched)
}
