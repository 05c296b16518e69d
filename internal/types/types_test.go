package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotificationItemAcceptsDocumentID(t *testing.T) {
	var item NotificationItem
	err := json.Unmarshal([]byte(`{"_id":" n1 ","message":"revenue changed in Account table","type":"account","read":false,"createdAt":"2025-05-01T10:00:00Z"}`), &item)
	require.NoError(t, err)
	require.Equal(t, "n1", item.ID)
	require.Equal(t, NotificationCategoryAccount, item.Category)
	require.False(t, item.CreatedAt.IsZero())

	var preferred NotificationItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","_id":"b"}`), &preferred))
	require.Equal(t, "a", preferred.ID)
}

func TestNormalizeNotificationCategory(t *testing.T) {
	got, ok := NormalizeNotificationCategory(" Leads ")
	require.True(t, ok)
	require.Equal(t, NotificationCategoryLead, got)

	_, ok = NormalizeNotificationCategory("invoice")
	require.False(t, ok)
	require.Len(t, NotificationCategories(), 5)
}

func TestParseResource(t *testing.T) {
	got, ok := ParseResource("deal")
	require.True(t, ok)
	require.Equal(t, ResourceDeals, got)

	got, ok = ParseResource("Meetings")
	require.True(t, ok)
	require.Equal(t, ResourceMeetings, got)

	_, ok = ParseResource("invoices")
	require.False(t, ok)
}

func TestMoneyFormat(t *testing.T) {
	cases := map[string]string{
		"$1,200":     "$1,200",
		"1234567.50": "$1,234,567.5",
		"999":        "$999",
		"":           "$0",
		"n/a":        "$0",
		"-2500":      "-$2,500",
	}
	for raw, want := range cases {
		if got := NewMoney(raw).Format(); got != want {
			t.Fatalf("NewMoney(%q).Format() = %q, want %q", raw, got, want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	var account Account
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a1","name":"Acme","revenue":"$12,000"}`), &account))
	require.Equal(t, "$12,000", account.Revenue.Format())

	var deal Deal
	require.NoError(t, json.Unmarshal([]byte(`{"dealValue":4500.25}`), &deal))
	require.Equal(t, "$4,500.25", deal.DealValue.Format())

	data, err := json.Marshal(deal)
	require.NoError(t, err)
	require.Contains(t, string(data), `"dealValue":"4500.25"`)
}
