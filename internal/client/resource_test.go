package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"crmdash/internal/types"
)

func TestResourceListAndCreate(t *testing.T) {
	var created types.Account
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/accounts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"_id":"a1","name":"Acme","revenue":"$5,000"}]`))
		case http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&created)
			created.ID = "a2"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		}
	}))
	defer server.Close()

	accounts := NewResource[types.Account](NewWithBaseURL(server.URL+"/api", ""), types.ResourceAccounts)
	list, err := accounts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "$5,000", list[0].Revenue.Format())

	out, err := accounts.Create(context.Background(), types.Account{Name: "Globex", Revenue: types.NewMoney("100")})
	require.NoError(t, err)
	require.Equal(t, "a2", out.ID)
	require.Equal(t, "Globex", created.Name)
}

func TestResourceGetUpdateRequireID(t *testing.T) {
	r := NewResource[types.Task](NewWithBaseURL("http://127.0.0.1:1", ""), types.ResourceTasks)
	_, err := r.Get(context.Background(), "")
	require.Error(t, err)
	_, err = r.Update(context.Background(), " ", types.Task{})
	require.Error(t, err)
	require.Error(t, r.Delete(context.Background(), ""))
}

func TestResourceDeleteManyIsIndependent(t *testing.T) {
	var mu sync.Mutex
	deleted := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/leads/")
		if id == "bad" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		mu.Lock()
		deleted[id] = true
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	leads := NewResource[types.Lead](NewWithBaseURL(server.URL, ""), types.ResourceLeads)
	results := leads.DeleteMany(context.Background(), []string{"l1", "bad", "l3"})
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.True(t, IsNotFound(results[1].Err))
	require.NoError(t, results[2].Err)
	require.Equal(t, "bad", results[1].ID)
	require.Equal(t, map[string]bool{"l1": true, "l3": true}, deleted)
}

func TestRecordsReturnsRawObjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"m1","name":"Kickoff","venue":"HQ"}]`))
	}))
	defer server.Close()

	records, err := NewWithBaseURL(server.URL, "").Records(context.Background(), types.ResourceMeetings)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Kickoff", records[0]["name"])
}
