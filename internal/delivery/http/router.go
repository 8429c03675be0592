package http

import (
	"net/http"

	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	passwordResetHandler *handler.PasswordResetHandler
	appointmentHandler   *handler.AppointmentHandler
	slotHandler          *handler.SlotHandler
	notificationHandler  *handler.NotificationHandler
	treatmentHandler     *handler.TreatmentHandler
	dentistHandler       *handler.DentistHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	passwordResetHandler *handler.PasswordResetHandler,
	appointmentHandler *handler.AppointmentHandler,
	slotHandler *handler.SlotHandler,
	notificationHandler *handler.NotificationHandler,
	treatmentHandler *handler.TreatmentHandler,
	dentistHandler *handler.DentistHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		passwordResetHandler: passwordResetHandler,
		appointmentHandler:   appointmentHandler,
		slotHandler:          slotHandler,
		notificationHandler:  notificationHandler,
		treatmentHandler:     treatmentHandler,
		dentistHandler:       dentistHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Password reset routes (public)
	reset := api.PathPrefix("/password-reset").Subrouter()
	reset.HandleFunc("/request", r.passwordResetHandler.Request).Methods(http.MethodPost)
	reset.HandleFunc("/validate", r.passwordResetHandler.Validate).Methods(http.MethodPost)
	reset.HandleFunc("/confirm", r.passwordResetHandler.Confirm).Methods(http.MethodPost)

	// Public browsing
	api.HandleFunc("/treatments", r.treatmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/treatments/{id}", r.treatmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/dentists", r.dentistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/dentists/{dentistId}/slots", r.slotHandler.DentistSlots).Methods(http.MethodGet)
	api.HandleFunc("/dentists/{dentistId}/schedules", r.dentistHandler.GetSchedules).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/my", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Dentist routes
	dentist := api.PathPrefix("/dentist").Subrouter()
	dentist.Use(r.authMiddleware.Authenticate)
	dentist.Use(middleware.RequireDentist)
	dentist.HandleFunc("/appointments", r.appointmentHandler.GetDentistDay).Methods(http.MethodGet)
	dentist.HandleFunc("/appointments/{id}/check-in", r.appointmentHandler.CheckIn).Methods(http.MethodPost)
	dentist.HandleFunc("/appointments/{id}/treatment", r.appointmentHandler.RecordTreatment).Methods(http.MethodPost)
	dentist.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)

	// Notification routes (any authenticated role; scope resolved per user)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/unread-count", r.notificationHandler.UnreadCount).Methods(http.MethodGet)
	notifications.HandleFunc("/mark-all-read", r.notificationHandler.MarkAllRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}", r.notificationHandler.Delete).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Staff onboarding and queue oversight (admin)
	admin.HandleFunc("/dentists", r.authHandler.RegisterDentist).Methods(http.MethodPost)
	admin.HandleFunc("/appointments", r.appointmentHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.Confirm).Methods(http.MethodPost)

	// Slot management (admin)
	admin.HandleFunc("/slots/generate", r.slotHandler.Generate).Methods(http.MethodPost)
	admin.HandleFunc("/slots", r.slotHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", r.slotHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/{id}/availability", r.slotHandler.SetAvailability).Methods(http.MethodPut)

	// Treatment catalog management (admin)
	admin.HandleFunc("/treatments", r.treatmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.Delete).Methods(http.MethodDelete)

	// Dentist schedule management (admin)
	admin.HandleFunc("/schedules", r.dentistHandler.UpsertSchedule).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{id}", r.dentistHandler.DeleteSchedule).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
