package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rosterline/backend/internal/config"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/repository"
	"github.com/rosterline/backend/internal/schedule"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	schedules   *schedule.Service
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		schedules:   schedule.NewService(cfg, repo),
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in manager
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/managers", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOwner}))
			r.Get("/", h.GetAllManagers)
			r.Post("/", h.CreateManager)
		})

		r.Get("/businesses", h.GetAllBusinesses)
		r.With(h.RequiredRole([]domain.Role{domain.RoleOwner})).Post("/businesses", h.CreateBusiness)

		r.Route("/businesses/{businessID}", func(r chi.Router) {
			r.Use(h.business)
			r.Get("/", h.GetBusiness)

			r.Route("/shift-templates", func(r chi.Router) {
				r.Get("/", h.GetShiftTemplates)
				r.Post("/", h.CreateShiftTemplate)
				r.Route("/{templateID}", func(r chi.Router) {
					r.Use(h.shiftTemplate)
					r.Get("/", h.GetShiftTemplate)
					r.Patch("/", h.UpdateShiftTemplate)
					r.Delete("/", h.DeleteShiftTemplate)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/current", h.GetCurrentSchedule)
				r.Route("/{weekStart}", func(r chi.Router) {
					r.Use(h.weekSchedule)
					r.Get("/", h.GetSchedule)
					r.With(h.myInfo).Post("/post", h.PostSchedule)
					r.Post("/unpost", h.UnpostSchedule)
					r.Put("/hours/{employeeID}", h.ConfirmEmployeeHours)
					r.Route("/shifts", func(r chi.Router) {
						r.Post("/", h.CreateShift)
						r.Post("/bulk", h.BulkCreateShifts)
						r.Patch("/{shiftID}", h.UpdateShift)
						r.Delete("/{shiftID}", h.DeleteShift)
					})
				})
			})
		})
	})
}
