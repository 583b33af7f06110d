package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/security"
	"smartlab-backend/internal/service"
)

// Services bundles everything the router exposes.
type Services struct {
	Auth          service.AuthService
	Borrow        service.BorrowService
	Inventory     service.InventoryService
	Notifications service.NotificationService
	Users         service.UserService
	Metrics       service.MetricService
	Settings      service.SettingsService
}

// NewRouter wires all handlers under /api/v1. Login, refresh and student
// registration are public; everything else requires an access token.
func NewRouter(svcs Services, tokens security.TokenManager, userRepo repository.UserRepository) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	inventoryHandler := NewInventoryHandler(svcs.Inventory)
	requestHandler := NewRequestHandler(svcs.Borrow)
	notificationHandler := NewNotificationHandler(svcs.Notifications)
	metricHandler := NewMetricHandler(svcs.Metrics)
	settingsHandler := NewSettingsHandler(svcs.Settings)
	userHandler := NewUserHandler(svcs.Users)

	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authMW := NewAuthMiddleware(tokens, userRepo)
	protected := api.NewRoute().Subrouter()
	protected.Use(authMW.Require)

	protected.HandleFunc("/auth/admins", authHandler.CreateAdmin).Methods(http.MethodPost)

	protected.HandleFunc("/items", inventoryHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/items", inventoryHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/items/categories", inventoryHandler.Categories).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id}", inventoryHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id}", inventoryHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/items/{id}", inventoryHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/requests", requestHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/requests", requestHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{id}", requestHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{id}/transition", requestHandler.Transition).Methods(http.MethodPost)

	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	protected.HandleFunc("/metrics", metricHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/metrics", metricHandler.Ingest).Methods(http.MethodPost)

	protected.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/settings", settingsHandler.Update).Methods(http.MethodPut)

	protected.HandleFunc("/profile", userHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", userHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/students", userHandler.ListStudents).Methods(http.MethodGet)

	return router
}
