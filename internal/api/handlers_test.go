package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kashifm/lunchledger/internal/audit"
	"github.com/kashifm/lunchledger/internal/ledger"
	"github.com/kashifm/lunchledger/internal/models"
	"github.com/kashifm/lunchledger/internal/service"
	"github.com/kashifm/lunchledger/internal/storage/sqlite"
)

// setupTestServer wires the full stack onto a temp database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lunchledger-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	events := audit.NopRecorder{}
	a := New(
		service.NewLedgerService(store, events),
		service.NewMemberService(store, events),
		service.NewOrderService(store, events),
	)
	server := httptest.NewServer(a.Router())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func createMember(t *testing.T, base, name string) models.Member {
	t.Helper()
	var m models.Member
	if code := doJSON(t, http.MethodPost, base+"/api/members", map[string]string{"name": name}, &m); code != http.StatusCreated {
		t.Fatalf("create member returned %d", code)
	}
	return m
}

func TestBalancesFlow(t *testing.T) {
	server := setupTestServer(t)
	base := server.URL

	alice := createMember(t, base, "Alice")
	bob := createMember(t, base, "Bob")

	code := doJSON(t, http.MethodPost, base+"/api/orders", orderRequest{
		Restaurant: "Five Crowns",
		PayerID:    bob.ID,
		Shares:     []models.Share{{MemberID: alice.ID, Amount: 50}},
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create order returned %d", code)
	}

	code = doJSON(t, http.MethodPost, base+"/api/settlements", map[string]any{
		"from": alice.ID, "to": bob.ID, "amount": 30,
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create settlement returned %d", code)
	}

	var res ledger.Result
	if code := doJSON(t, http.MethodGet, base+"/api/balances?filter=all", nil, &res); code != http.StatusOK {
		t.Fatalf("balances returned %d", code)
	}
	if len(res.Debts) != 1 {
		t.Fatalf("expected 1 debt, got %+v", res.Debts)
	}
	d := res.Debts[0]
	if d.From != alice.ID || d.To != bob.ID || math.Abs(d.Amount-20) > ledger.Epsilon {
		t.Errorf("debt = %+v, want Alice owes Bob 20", d)
	}
	if tot := res.Totals[alice.ID]; math.Abs(tot.Give-20) > ledger.Epsilon {
		t.Errorf("totals[alice] = %+v, want give 20", tot)
	}
}

func TestBalancesRejectsUnknownFilter(t *testing.T) {
	server := setupTestServer(t)
	if code := doJSON(t, http.MethodGet, server.URL+"/api/balances?filter=fortnight", nil, nil); code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown filter, got %d", code)
	}
}

func TestSettlementValidationStatuses(t *testing.T) {
	server := setupTestServer(t)
	base := server.URL
	alice := createMember(t, base, "Alice")
	bob := createMember(t, base, "Bob")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"non-positive amount", map[string]any{"from": alice.ID, "to": bob.ID, "amount": 0}, http.StatusBadRequest},
		{"same member", map[string]any{"from": alice.ID, "to": alice.ID, "amount": 10}, http.StatusBadRequest},
		{"unknown member", map[string]any{"from": alice.ID, "to": "ghost", "amount": 10}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := doJSON(t, http.MethodPost, base+"/api/settlements", tt.body, nil); code != tt.want {
				t.Errorf("got status %d, want %d", code, tt.want)
			}
		})
	}
}

func TestMemberRemovalStatuses(t *testing.T) {
	server := setupTestServer(t)
	base := server.URL
	alice := createMember(t, base, "Alice")
	bob := createMember(t, base, "Bob")

	doJSON(t, http.MethodPost, base+"/api/orders", orderRequest{
		PayerID: bob.ID,
		Shares:  []models.Share{{MemberID: alice.ID, Amount: 25}},
	}, nil)

	var removable map[string]bool
	if code := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/members/%s/removable", base, alice.ID), nil, &removable); code != http.StatusOK {
		t.Fatalf("removable check returned %d", code)
	}
	if removable["removable"] {
		t.Error("Alice has history and should not be removable")
	}

	if code := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/members/%s", base, alice.ID), nil, nil); code != http.StatusConflict {
		t.Errorf("expected 409 for blocked removal, got %d", code)
	}

	doJSON(t, http.MethodPost, base+"/api/settlements", map[string]any{
		"from": alice.ID, "to": bob.ID, "amount": 25,
	}, nil)

	if code := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/members/%s", base, alice.ID), nil, nil); code != http.StatusNoContent {
		t.Errorf("expected 204 after settling, got %d", code)
	}

	if code := doJSON(t, http.MethodDelete, base+"/api/members/ghost", nil, nil); code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown member, got %d", code)
	}
}

func TestAdjustmentsAffectBalances(t *testing.T) {
	server := setupTestServer(t)
	base := server.URL
	alice := createMember(t, base, "Alice")
	bob := createMember(t, base, "Bob")

	code := doJSON(t, http.MethodPost, base+"/api/adjustments", map[string]any{
		"from": alice.ID, "to": bob.ID, "amount": 12.5, "note": "carried over",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create adjustment returned %d", code)
	}

	var res ledger.Result
	doJSON(t, http.MethodGet, base+"/api/balances", nil, &res)
	if len(res.Debts) != 1 || math.Abs(res.Debts[0].Amount-12.5) > ledger.Epsilon {
		t.Errorf("expected adjustment debt of 12.5, got %+v", res.Debts)
	}

	var adjustments []models.Adjustment
	doJSON(t, http.MethodGet, base+"/api/adjustments", nil, &adjustments)
	if len(adjustments) != 1 || adjustments[0].Note != "carried over" {
		t.Errorf("unexpected adjustments list: %+v", adjustments)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)
	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health returned %d", resp.StatusCode)
	}
}
