package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type Resource string

const (
	ResourceAccounts  Resource = "accounts"
	ResourceContacts  Resource = "contacts"
	ResourceCampaigns Resource = "campaigns"
	ResourceDeals     Resource = "deals"
	ResourceTasks     Resource = "tasks"
	ResourceLeads     Resource = "leads"
	ResourceMeetings  Resource = "meetings"
)

var resources = []Resource{
	ResourceAccounts,
	ResourceContacts,
	ResourceCampaigns,
	ResourceDeals,
	ResourceTasks,
	ResourceLeads,
	ResourceMeetings,
}

func Resources() []Resource {
	return append([]Resource{}, resources...)
}

func ParseResource(raw string) (Resource, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value != "" && !strings.HasSuffix(value, "s") {
		value += "s"
	}
	for _, resource := range resources {
		if string(resource) == value {
			return resource, true
		}
	}
	return "", false
}

// Money is a currency amount that tolerates formatted input such as "$1,200".
type Money struct {
	decimal.Decimal
}

func NewMoney(value string) Money {
	return Money{Decimal: parseMoney(value)}
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		m.Decimal = parseMoney(raw)
		return nil
	}
	m.Decimal = parseMoney(string(data))
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.String())
}

// Format renders the amount as "$1,234" or "$1,234.5"; unparsable input
// renders as "$0".
func (m Money) Format() string {
	rounded := m.Decimal.Round(2)
	negative := rounded.IsNegative()
	rounded = rounded.Abs()
	whole := rounded.Truncate(0)
	frac := rounded.Sub(whole)

	digits := whole.String()
	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	out := "$" + grouped.String()
	if !frac.IsZero() {
		fracText := strings.TrimPrefix(frac.String(), "0")
		out += fracText
	}
	if negative {
		out = "-" + out
	}
	return out
}

func parseMoney(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	value, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return value
}

type Account struct {
	ID      string `json:"_id,omitempty"`
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Number  string `json:"number"`
	Website string `json:"website"`
	Type    string `json:"type"`
	Revenue Money  `json:"revenue"`
}

type Contact struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	DOB   string `json:"dob"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Campaign struct {
	ID              string `json:"_id,omitempty"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Budget          Money  `json:"budget"`
	ExpectedRevenue Money  `json:"expectedRevenue"`
	ActualRevenue   Money  `json:"actualRevenue"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

type Deal struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Stage     string `json:"stage"`
	CloseDate string `json:"closeDate"`
	DealValue Money  `json:"dealValue"`
}

type Task struct {
	ID       string `json:"_id,omitempty"`
	Owner    string `json:"owner"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Due      string `json:"due"`
	Priority string `json:"priority"`
}

type Lead struct {
	ID        string `json:"_id,omitempty"`
	LeadOwner string `json:"leadOwner"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Status    string `json:"status"`
}

type Meeting struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Venue string `json:"venue"`
	From  string `json:"from"`
	To    string `json:"to"`
	Host  string `json:"host"`
}
