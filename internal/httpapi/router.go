package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/api"
	"venuebooking/internal/approval"
	"venuebooking/internal/audit"
	"venuebooking/internal/booking"
	"venuebooking/internal/document"
	"venuebooking/internal/eventdetail"
	"venuebooking/internal/events"
	"venuebooking/internal/feedback"
	"venuebooking/internal/metrics"
	"venuebooking/internal/notification"
	"venuebooking/internal/payment"
	"venuebooking/internal/user"
	"venuebooking/internal/venue"
	"venuebooking/pkg/config"
)

type Dependencies struct {
	Cfg     config.Config
	DB      *pgxpool.Pool
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(api.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(api.CORSMiddleware(api.CORSOptions{AllowedOrigins: deps.Cfg.AllowedOrigins}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", deps.Metrics.Handler())

	usersRepo := user.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)

	venueHandlers := venue.Handlers{Repo: venue.NewRepository(deps.DB)}
	bookingHandlers := booking.Handlers{
		Repo:    bookingsRepo,
		Service: &booking.Service{DB: deps.DB, Events: deps.Events, Metrics: deps.Metrics},
	}
	approvalHandlers := approval.Handlers{
		DB:       deps.DB,
		Bookings: bookingsRepo,
		Service:  &approval.Service{DB: deps.DB, Events: deps.Events, Metrics: deps.Metrics},
	}
	documentHandlers := document.Handlers{
		Bookings: bookingsRepo,
		Repo:     document.NewRepository(deps.DB),
		Service:  &document.Service{DB: deps.DB, Events: deps.Events, Metrics: deps.Metrics},
	}
	eventDetailHandlers := eventdetail.Handlers{Service: &eventdetail.Service{
		DB:       deps.DB,
		Bookings: bookingsRepo,
		Repo:     eventdetail.NewRepository(deps.DB),
	}}
	feedbackHandlers := feedback.Handlers{DB: deps.DB, Repo: feedback.NewRepository(deps.DB)}
	notificationHandlers := notification.Handlers{Repo: notification.NewRepository(deps.DB)}
	paymentHandlers := payment.Handlers{DB: deps.DB}
	auditHandlers := audit.Handlers{Repo: audit.NewRepository(deps.DB)}

	r.Route("/v1", func(r chi.Router) {
		r.Use(api.Authenticate(deps.Cfg, usersRepo))

		r.Get("/venues", venueHandlers.List)
		r.Get("/venues/{id}", venueHandlers.Get)

		r.Post("/bookings", bookingHandlers.Create)
		r.Get("/bookings", bookingHandlers.List)

		r.Route("/bookings/{id}", func(r chi.Router) {
			r.Get("/", bookingHandlers.Get)
			r.Put("/", bookingHandlers.Update)
			r.Delete("/", approvalHandlers.Cancel)

			// Moderation
			r.Post("/review", approvalHandlers.Action(approval.ActionReview))
			r.Post("/approve", approvalHandlers.Action(approval.ActionApprove))
			r.Post("/reject", approvalHandlers.Action(approval.ActionReject))
			r.Post("/request-documents", approvalHandlers.Action(approval.ActionRequestDocuments))
			r.Post("/actions/{action}", approvalHandlers.ActionByName)
			r.Post("/complete", approvalHandlers.Complete)
			r.Get("/history", approvalHandlers.History)
			r.Get("/audit", auditHandlers.ListByBooking)

			r.Get("/comments", feedbackHandlers.List)
			r.Post("/comments", feedbackHandlers.Create)

			r.Get("/documents", documentHandlers.List)
			r.Post("/documents", documentHandlers.Upload)
			r.Post("/documents/{doc_id}/verify", documentHandlers.Verify)

			r.Get("/event-details", eventDetailHandlers.Get)
			r.Post("/event-details", eventDetailHandlers.Create)
			r.Put("/event-details", eventDetailHandlers.Update)

			r.Post("/payment", paymentHandlers.RecordPayment)
		})

		r.Get("/approvals", approvalHandlers.Queue)

		r.Get("/notifications", notificationHandlers.List)
		r.Post("/notifications/{id}/read", notificationHandlers.MarkRead)
	})

	return r
}
