package client

import "crmdash/internal/types"

type NotificationsResponse struct {
	Notifications []types.NotificationItem `json:"notifications"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

type DeleteResult struct {
	ID  string
	Err error
}
