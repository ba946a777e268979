package dto

import "tripai-backend/internal/models"

// NotificationListResponse wraps a user's notification feed.
type NotificationListResponse struct {
	Success     bool                  `json:"success"`
	UnreadCount int                   `json:"unreadCount"`
	Data        []models.Notification `json:"data"`
}
