package daemon

import (
	"context"
	"fmt"
	"strings"

	"crmdash/internal/logging"
	"crmdash/internal/store"
	"crmdash/internal/types"
)

// Change notifications raised by record mutations. Resources without a
// notification category (contacts, tasks) stay silent.
var resourceCategories = map[types.Resource]types.NotificationCategory{
	types.ResourceAccounts:  types.NotificationCategoryAccount,
	types.ResourceCampaigns: types.NotificationCategoryCampaign,
	types.ResourceMeetings:  types.NotificationCategoryMeeting,
	types.ResourceLeads:     types.NotificationCategoryLead,
	types.ResourceDeals:     types.NotificationCategoryDeal,
}

type RecordService struct {
	repo          store.Repository
	notifications *NotificationService
}

func NewRecordService(repo store.Repository, notifications *NotificationService) *RecordService {
	return &RecordService{repo: repo, notifications: notifications}
}

func (s *RecordService) recordStore(resource types.Resource) (store.RecordStore, error) {
	if s.repo == nil {
		return nil, unavailableError("record store not available", nil)
	}
	records, err := s.repo.Records(resource)
	if err != nil {
		return nil, fromStoreError(err)
	}
	return records, nil
}

func (s *RecordService) List(ctx context.Context, resource types.Resource) ([]store.Record, error) {
	records, err := s.recordStore(resource)
	if err != nil {
		return nil, err
	}
	out, err := records.List(ctx)
	if err != nil {
		return nil, fromStoreError(err)
	}
	return out, nil
}

func (s *RecordService) Get(ctx context.Context, resource types.Resource, id string) (store.Record, error) {
	records, err := s.recordStore(resource)
	if err != nil {
		return nil, err
	}
	record, ok, err := records.Get(ctx, id)
	if err != nil {
		return nil, fromStoreError(err)
	}
	if !ok {
		return nil, notFoundError("record not found", nil)
	}
	return record, nil
}

func (s *RecordService) Create(ctx context.Context, resource types.Resource, record store.Record) (store.Record, error) {
	if len(record) == 0 {
		return nil, invalidError("record payload is required", nil)
	}
	records, err := s.recordStore(resource)
	if err != nil {
		return nil, err
	}
	created, err := records.Create(ctx, record)
	if err != nil {
		return nil, fromStoreError(err)
	}
	s.announce(ctx, resource, "created", created, "")
	return created, nil
}

func (s *RecordService) Update(ctx context.Context, resource types.Resource, id string, patch store.Record) (store.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidError("record id is required", nil)
	}
	records, err := s.recordStore(resource)
	if err != nil {
		return nil, err
	}
	updated, err := records.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStoreError(err)
	}
	s.announce(ctx, resource, "updated", updated, userIDOf(patch))
	return updated, nil
}

func (s *RecordService) Delete(ctx context.Context, resource types.Resource, id string) error {
	records, err := s.recordStore(resource)
	if err != nil {
		return err
	}
	if err := records.Delete(ctx, id); err != nil {
		return fromStoreError(err)
	}
	return nil
}

// announce posts a change notification for notifiable resources. Failures are
// not surfaced to the mutating caller.
func (s *RecordService) announce(ctx context.Context, resource types.Resource, verb string, record store.Record, userID string) {
	category, ok := resourceCategories[resource]
	if !ok || s.notifications == nil {
		return
	}
	if userID == "" {
		userID = userIDOf(record)
	}
	message := fmt.Sprintf("%s %s", labelOf(resource, record), verb)
	if _, err := s.notifications.Create(ctx, types.CreateNotificationRequest{
		UserID:  userID,
		Message: message,
		Type:    category,
	}); err != nil {
		s.notifications.logger.Warn("change notification failed",
			logging.F("resource", string(resource)),
			logging.F("error", err),
		)
	}
}

func labelOf(resource types.Resource, record store.Record) string {
	singular := strings.TrimSuffix(string(resource), "s")
	for _, key := range []string{"name", "title", "leadName", "dealName", "campaignName"} {
		if value, ok := record[key].(string); ok && strings.TrimSpace(value) != "" {
			return fmt.Sprintf("%s %q", singular, strings.TrimSpace(value))
		}
	}
	return singular
}

func userIDOf(record store.Record) string {
	value, _ := record["userId"].(string)
	return strings.TrimSpace(value)
}
