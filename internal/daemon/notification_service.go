package daemon

import (
	"context"
	"strings"

	"crmdash/internal/logging"
	"crmdash/internal/store"
	"crmdash/internal/types"
)

type NotificationService struct {
	notifications store.NotificationStore
	logger        logging.Logger
}

func NewNotificationService(notifications store.NotificationStore, logger logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NotificationService{notifications: notifications, logger: logger}
}

// List returns the feed newest first. An empty userID lists the global feed.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*types.NotificationItem, error) {
	if s.notifications == nil {
		return nil, unavailableError("notification store not available", nil)
	}
	items, err := s.notifications.List(ctx, store.NotificationFilter{UserID: strings.TrimSpace(userID)})
	if err != nil {
		return nil, fromStoreError(err)
	}
	return items, nil
}

func (s *NotificationService) Create(ctx context.Context, req types.CreateNotificationRequest) (*types.NotificationItem, error) {
	if s.notifications == nil {
		return nil, unavailableError("notification store not available", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, invalidError("message is required", nil)
	}
	category, ok := types.NormalizeNotificationCategory(string(req.Type))
	if !ok {
		return nil, invalidError("type must be one of account, campaign, meeting, lead, deal", nil)
	}
	req.Type = category
	item, err := s.notifications.Create(ctx, req)
	if err != nil {
		return nil, fromStoreError(err)
	}
	s.logger.Info("notification_created",
		logging.F("id", item.ID),
		logging.F("type", string(item.Category)),
		logging.F("user_id", item.UserID),
	)
	return item, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*types.NotificationItem, error) {
	if s.notifications == nil {
		return nil, unavailableError("notification store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("notification id is required", nil)
	}
	item, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, fromStoreError(err)
	}
	return item, nil
}
