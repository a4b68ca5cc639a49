package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

func newServer(t *testing.T, status int, body string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*got = capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   data,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PEPAY_API_KEY", "")
	t.Setenv("PEPAY_BASE_URL", "")
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCreateInvoice(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusOK,
		`{"invoice_id":"inv_1","payment_url":"https://pay.pepay.io/inv_1","expires_at":"2026-01-01T00:00:00Z","status":"unpaid","amount_usd":25}`,
		&got)

	code, stdout, stderr := execute("invoices", "create",
		"--api-key", "sk_test_1", "--base-url", srv.URL,
		"--amount", "25", "--description", "Order #1042",
		"--metadata", "order=1042", "--expires-in", "3600")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}

	if got.Method != http.MethodPost || got.Path != "/api/v1/invoices" {
		t.Errorf("unexpected request %s %s", got.Method, got.Path)
	}
	if got.Header.Get("X-API-Key") != "sk_test_1" {
		t.Errorf("api key header: got %q", got.Header.Get("X-API-Key"))
	}
	if got.Header.Get("Idempotency-Key") == "" {
		t.Error("expected an idempotency key")
	}

	var body map[string]any
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatal(err)
	}
	if body["amount_usd"] != 25.0 || body["description"] != "Order #1042" || body["expires_in"] != 3600.0 {
		t.Errorf("unexpected body %s", got.Body)
	}
	if md, _ := body["metadata"].(map[string]any); md["order"] != "1042" {
		t.Errorf("metadata: got %v", body["metadata"])
	}
	if _, ok := body["customer_id"]; ok {
		t.Error("customer_id should be omitted when not set")
	}

	if !strings.Contains(stdout, `"invoice_id": "inv_1"`) {
		t.Errorf("expected indented invoice on stdout, got %s", stdout)
	}
}

func TestCreateInvoiceRequiresAmount(t *testing.T) {
	isolate(t)
	code, _, stderr := execute("invoices", "create", "--api-key", "sk_test_1")
	if code == 0 {
		t.Fatal("expected a non-zero exit without --amount")
	}
	if !strings.Contains(stderr, "amount") {
		t.Errorf("expected the missing flag in stderr, got %s", stderr)
	}
}

func TestListInvoices(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `{"invoices":[],"page":2}`, &got)

	code, stdout, stderr := execute("invoices", "list",
		"--api-key", "sk_test_1", "--base-url", srv.URL,
		"--page", "2", "--status", "unpaid")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if got.Method != http.MethodGet || got.Path != "/api/v1/invoices" {
		t.Errorf("unexpected request %s %s", got.Method, got.Path)
	}
	if got.Query != "page=2&status=unpaid" {
		t.Errorf("query: got %q", got.Query)
	}
	if !strings.Contains(stdout, `"page": 2`) {
		t.Errorf("expected passthrough body, got %s", stdout)
	}
}

func TestListInvoicesRejectsUnknownStatus(t *testing.T) {
	isolate(t)
	code, _, stderr := execute("invoices", "list", "--api-key", "sk_test_1", "--status", "void")
	if code == 0 {
		t.Fatal("expected a non-zero exit")
	}
	if !strings.Contains(stderr, `invalid status "void"`) {
		t.Errorf("unexpected stderr %s", stderr)
	}
}

func TestCustomerInvoices(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `[]`, &got)

	code, _, stderr := execute("invoices", "customer", "cust_123",
		"--api-key", "sk_test_1", "--base-url", srv.URL)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if got.Path != "/api/v1/invoices/customer/cust_123" || got.Query != "" {
		t.Errorf("unexpected request %s?%s", got.Path, got.Query)
	}
}

func TestTotalsFromEnvironment(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusOK,
		`{"total_amount_usd":100,"total_paid_usd":60,"total_unpaid_usd":25,"total_expired_usd":15,"invoice_count":{"total":4,"paid":2,"unpaid":1,"expired":1}}`,
		&got)
	t.Setenv("PEPAY_API_KEY", "sk_env")
	t.Setenv("PEPAY_BASE_URL", srv.URL)

	code, stdout, stderr := execute("invoices", "totals")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if got.Path != "/api/v1/invoices/totals" {
		t.Errorf("path: got %q", got.Path)
	}
	if got.Header.Get("X-API-Key") != "sk_env" {
		t.Errorf("api key header: got %q", got.Header.Get("X-API-Key"))
	}
	if !strings.Contains(stdout, `"total_paid_usd": 60`) {
		t.Errorf("unexpected stdout %s", stdout)
	}
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusOK, `[]`, &got)

	path := filepath.Join(t.TempDir(), "pepay.yaml")
	cfg := "api-key: sk_file\nbase-url: " + srv.URL + "\n"
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := execute("invoices", "customer", "cust_9", "--config", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if got.Header.Get("X-API-Key") != "sk_file" {
		t.Errorf("api key header: got %q", got.Header.Get("X-API-Key"))
	}
}

func TestAPIErrorOutput(t *testing.T) {
	isolate(t)
	var got capturedRequest
	srv := newServer(t, http.StatusPaymentRequired,
		`{"error":"Amount must be between 1 and 10000","code":"INVALID_AMOUNT_RANGE"}`, &got)

	code, stdout, stderr := execute("invoices", "create",
		"--api-key", "sk_test_1", "--base-url", srv.URL, "--amount", "0.5")
	if code != 1 {
		t.Errorf("exit: got %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout, got %s", stdout)
	}
	want := "INVALID_AMOUNT_RANGE: Amount must be between 1 and 10000 (402)\n"
	if stderr != want {
		t.Errorf("stderr: got %q, want %q", stderr, want)
	}
}

func TestMissingAPIKey(t *testing.T) {
	isolate(t)
	code, _, stderr := execute("invoices", "totals")
	if code != 1 {
		t.Errorf("exit: got %d, want 1", code)
	}
	if !strings.Contains(stderr, "no API key") {
		t.Errorf("unexpected stderr %s", stderr)
	}
}
