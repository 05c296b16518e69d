package types

import (
	"encoding/json"
	"strings"
	"time"
)

type NotificationCategory string

const (
	NotificationCategoryAccount  NotificationCategory = "account"
	NotificationCategoryCampaign NotificationCategory = "campaign"
	NotificationCategoryMeeting  NotificationCategory = "meeting"
	NotificationCategoryLead     NotificationCategory = "lead"
	NotificationCategoryDeal     NotificationCategory = "deal"
)

var notificationCategories = []NotificationCategory{
	NotificationCategoryAccount,
	NotificationCategoryCampaign,
	NotificationCategoryMeeting,
	NotificationCategoryLead,
	NotificationCategoryDeal,
}

func NotificationCategories() []NotificationCategory {
	return append([]NotificationCategory{}, notificationCategories...)
}

func NormalizeNotificationCategory(raw string) (NotificationCategory, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimSuffix(value, "s")
	for _, category := range notificationCategories {
		if string(category) == value {
			return category, true
		}
	}
	return "", false
}

type NotificationItem struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId,omitempty"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"type"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"createdAt"`
}

// UnmarshalJSON accepts both "id" and the document-store "_id" identity key.
func (n *NotificationItem) UnmarshalJSON(data []byte) error {
	type wire NotificationItem
	var raw struct {
		wire
		DocumentID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = NotificationItem(raw.wire)
	if strings.TrimSpace(n.ID) == "" {
		n.ID = raw.DocumentID
	}
	n.ID = strings.TrimSpace(n.ID)
	return nil
}

type CreateNotificationRequest struct {
	UserID  string               `json:"userId"`
	Message string               `json:"message"`
	Type    NotificationCategory `json:"type"`
}
