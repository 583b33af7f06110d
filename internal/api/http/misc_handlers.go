package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notifications.ListNotifications(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAsRead(r.Context(), sessionFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type MetricHandler struct {
	metrics service.MetricService
}

func NewMetricHandler(metrics service.MetricService) *MetricHandler {
	return &MetricHandler{metrics: metrics}
}

func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metrics.ListMetrics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

type metricBody struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	MinValue float64 `json:"minValue"`
	MaxValue float64 `json:"maxValue"`
	Icon     string  `json:"icon"`
}

func (h *MetricHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var body metricBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	metric, err := h.metrics.Ingest(r.Context(), sessionFrom(r.Context()), service.MetricInput{
		ID:       body.ID,
		Name:     body.Name,
		Value:    body.Value,
		Unit:     body.Unit,
		MinValue: body.MinValue,
		MaxValue: body.MaxValue,
		Icon:     body.Icon,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

type SettingsHandler struct {
	settings service.SettingsService
}

func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetSettings(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := decodeJSON(r, &settings); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.settings.UpdateSettings(r.Context(), sessionFrom(r.Context()), &settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileBody struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	StudentID    string `json:"studentId"`
	ProfileImage string `json:"profileImage"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body updateProfileBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), sessionFrom(r.Context()), service.UpdateProfileInput{
		Name:         body.Name,
		Department:   body.Department,
		StudentID:    body.StudentID,
		ProfileImage: body.ProfileImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.users.ListStudents(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}
