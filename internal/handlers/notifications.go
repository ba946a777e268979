package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tripai-backend/internal/dto"
	"tripai-backend/internal/middleware"
	"tripai-backend/internal/repository"
	"tripai-backend/internal/utils"
)

// NotificationsHandler serves the signed-in user's notification feed.
type NotificationsHandler struct {
	notifications repository.NotificationStore
}

func NewNotificationsHandler(store repository.Store) *NotificationsHandler {
	return &NotificationsHandler{notifications: store.Notifications()}
}

// List godoc
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListResponse
// @Router /api/notifications [get]
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return
	}

	notifications, err := h.notifications.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	unread := 0
	for i := range notifications {
		if !notifications[i].Read {
			unread++
		}
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NotificationListResponse{
		Success:     true,
		UnreadCount: unread,
		Data:        notifications,
	})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} utils.ErrorBody
// @Router /api/notifications/{id}/read [put]
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use PUT")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	path = strings.TrimSuffix(path, "/read")
	id, err := uuid.Parse(path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_id", "notification ID must be a UUID")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Notification marked as read"})
}
