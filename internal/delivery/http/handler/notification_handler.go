package handler

import (
	"net/http"
	"strconv"

	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := h.identity(w, r)
	if !ok {
		return
	}

	query := usecase.ListNotificationsQuery{
		UnreadOnly: r.URL.Query().Get("unread_only") == "true",
		Type:       r.URL.Query().Get("type"),
	}
	query.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	query.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, err := h.notificationUsecase.List(r.Context(), userID, roleID, query)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.Forbidden(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get notifications")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, ok := h.notificationID(w, r)
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), userID, roleID, id); err != nil {
		h.writeError(w, err, "Failed to mark notification as read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkAllRead(r.Context(), userID, roleID); err != nil {
		h.writeError(w, err, "Failed to mark notifications as read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", nil)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := h.identity(w, r)
	if !ok {
		return
	}

	count, err := h.notificationUsecase.UnreadCount(r.Context(), userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to count unread notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", map[string]int64{"unread_count": count})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, ok := h.notificationID(w, r)
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), userID, roleID, id); err != nil {
		h.writeError(w, err, "Failed to delete notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}

func (h *NotificationHandler) identity(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}

func (h *NotificationHandler) notificationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return 0, false
	}
	return id, true
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrNotificationNotFound:
		response.NotFound(w, "Notification not found")
	case usecase.ErrNotificationNotOwned:
		response.Forbidden(w, "Notification does not belong to you")
	case usecase.ErrProfileNotFound:
		response.Forbidden(w, "Profile not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
