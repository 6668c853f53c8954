//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	snippeTestAPIKey     = "sk_test_e2e"
	snippeTestSigningKey = "whsec_e2e"
)

// snippeMock is an in-memory rendition of the payments API. It enforces
// bearer auth, honors idempotency keys, and signs outbound webhook
// deliveries the same way the real service does.
type snippeMock struct {
	mu          sync.Mutex
	payments    map[string]map[string]any
	payouts     map[string]map[string]any
	idempotency map[string]string
	seq         int
	balance     int64
}

func newSnippeMock() *snippeMock {
	return &snippeMock{
		payments:    map[string]map[string]any{},
		payouts:     map[string]map[string]any{},
		idempotency: map[string]string{},
		balance:     1_000_000,
	}
}

func (m *snippeMock) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payments", m.withAuth(m.createPayment))
	mux.HandleFunc("GET /payments", m.withAuth(m.listPayments))
	mux.HandleFunc("GET /payments/balance", m.withAuth(m.getBalance))
	mux.HandleFunc("GET /payments/{reference}", m.withAuth(m.getPayment))
	mux.HandleFunc("POST /payouts/send", m.withAuth(m.createPayout))
	mux.HandleFunc("GET /payouts", m.withAuth(m.listPayouts))
	mux.HandleFunc("GET /payouts/fee", m.withAuth(m.payoutFee))
	mux.HandleFunc("GET /payouts/{reference}", m.withAuth(m.getPayout))
	return httptest.NewServer(mux)
}

func (m *snippeMock) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+snippeTestAPIKey {
			writeJSON(w, 401, map[string]any{"message": "invalid api key"})
			return
		}
		next(w, r)
	}
}

func (m *snippeMock) createPayment(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]any{"message": "invalid json"})
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		if ref, ok := m.idempotency[key]; ok {
			writeJSON(w, 201, map[string]any{"data": m.payments[ref]})
			return
		}
	}

	m.seq++
	ref := fmt.Sprintf("PMT-%04d", m.seq)
	details, _ := req["details"].(map[string]any)
	payment := map[string]any{
		"reference":    ref,
		"status":       "pending",
		"amount":       details["amount"],
		"currency":     details["currency"],
		"payment_type": req["payment_type"],
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}
	if req["payment_type"] == "card" {
		payment["payment_url"] = "https://pay.snippe.sh/" + ref
	}
	if req["payment_type"] == "dynamic-qr" {
		payment["payment_token"] = "tok_" + ref
		payment["payment_qr_code"] = "iVBORw0KGgo="
	}
	m.payments[ref] = payment
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		m.idempotency[key] = ref
	}
	writeJSON(w, 201, map[string]any{"data": payment})
}

func (m *snippeMock) getPayment(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[r.PathValue("reference")]
	if !ok {
		writeJSON(w, 404, map[string]any{"message": "payment not found"})
		return
	}
	writeJSON(w, 200, map[string]any{"data": payment})
}

func (m *snippeMock) listPayments(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items := make([]map[string]any, 0, len(m.payments))
	for _, p := range m.payments {
		items = append(items, p)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, 200, map[string]any{"data": map[string]any{
		"payments": items,
		"total":    len(m.payments),
		"limit":    limit,
		"offset":   0,
	}})
}

func (m *snippeMock) getBalance(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, 200, map[string]any{"data": map[string]any{
		"available_balance": m.balance,
		"balance":           m.balance,
		"currency":          "TZS",
	}})
}

func (m *snippeMock) createPayout(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]any{"message": "invalid json"})
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	amount := int64(req["amount"].(float64))
	fee := payoutFeeFor(amount)
	if amount+fee > m.balance {
		writeJSON(w, 422, map[string]any{"message": "insufficient balance", "error_code": "INSUFFICIENT_BALANCE"})
		return
	}
	m.balance -= amount + fee

	m.seq++
	ref := fmt.Sprintf("PYT-%04d", m.seq)
	recipient := map[string]any{"name": req["recipient_name"]}
	provider := "airtel"
	if req["channel"] == "bank" {
		recipient["bank"] = req["recipient_bank"]
		recipient["account"] = req["recipient_account"]
		provider = "bank"
	} else {
		recipient["phone"] = req["recipient_phone"]
	}
	payout := map[string]any{
		"reference": ref,
		"status":    "pending",
		"amount":    map[string]any{"value": amount, "currency": "TZS"},
		"fees":      map[string]any{"value": fee, "currency": "TZS"},
		"total":     map[string]any{"value": amount + fee, "currency": "TZS"},
		"channel":   map[string]any{"type": req["channel"], "provider": provider},
		"recipient": recipient,
	}
	m.payouts[ref] = payout
	writeJSON(w, 201, map[string]any{"data": payout})
}

func (m *snippeMock) getPayout(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payout, ok := m.payouts[r.PathValue("reference")]
	if !ok {
		writeJSON(w, 404, map[string]any{"message": "payout not found"})
		return
	}
	writeJSON(w, 200, map[string]any{"data": payout})
}

func (m *snippeMock) listPayouts(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]map[string]any, 0, len(m.payouts))
	for _, p := range m.payouts {
		items = append(items, p)
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, 200, map[string]any{"data": map[string]any{
		"items":  items,
		"total":  len(m.payouts),
		"limit":  limit,
		"offset": 0,
	}})
}

func (m *snippeMock) payoutFee(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeJSON(w, 400, map[string]any{"message": "invalid amount"})
		return
	}
	fee := payoutFeeFor(amount)
	writeJSON(w, 200, map[string]any{"data": map[string]any{
		"amount":       amount,
		"fee_amount":   fee,
		"total_amount": amount + fee,
		"currency":     "TZS",
	}})
}

func payoutFeeFor(amount int64) int64 {
	fee := amount / 100
	if fee < 100 {
		fee = 100
	}
	return fee
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func webhookBody(event, reference string, amount int64) string {
	return strings.TrimSpace(fmt.Sprintf(
		`{"event":%q,"reference":%q,"status":"completed","amount":{"value":%d,"currency":"TZS"},"timestamp":%d}`,
		event, reference, amount, time.Now().Unix(),
	))
}
