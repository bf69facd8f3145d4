package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzjever/ledger-audit/internal/observability"
)

var auditIDPattern = regexp.MustCompile(`^audit-\d{20}$`)

func TestRecordAudit_Success(t *testing.T) {
	a, logs := newTestAPI(t, testConfig())
	before := testutil.ToFloat64(observability.EventsTotal.WithLabelValues(observability.OutcomeRecorded))

	w := do(t, a, http.MethodPost, "/audit", `{"action":"login","actor":"alice","resource":"session-1"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assertJSONHeaders(t, w)

	var resp RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "recorded", resp.Status)
	assert.Regexp(t, auditIDPattern, resp.AuditID)

	entries := logs.FilterMessage("audit event recorded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, resp.AuditID, fields["audit_id"])

	raw, ok := fields["event"].(json.RawMessage)
	require.True(t, ok, "event field should carry raw JSON")
	assert.Contains(t, string(raw), `"action":"login"`)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "login", event["action"])
	assert.Equal(t, "alice", event["actor"])
	assert.Equal(t, "session-1", event["resource"])
	assert.Equal(t, resp.AuditID, event["id"])
	assert.NotEmpty(t, event["timestamp"])

	after := testutil.ToFloat64(observability.EventsTotal.WithLabelValues(observability.OutcomeRecorded))
	assert.Equal(t, before+1, after)
}

func TestRecordAudit_PassThroughAndOrder(t *testing.T) {
	a, logs := newTestAPI(t, testConfig())
	reads := []time.Time{
		time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 1000, time.UTC),
	}
	a.now = func() time.Time {
		now := reads[0]
		reads = reads[1:]
		return now
	}

	w := do(t, a, http.MethodPost, "/audit",
		`{"meta":{"ip":"10.0.0.1","tags":["a","b"]},"action":"delete","actor":"bob","resource":"doc-9","id":"client-supplied","n":1.5,"ok":null}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, "audit-20240301000000000001", resp["audit_id"])

	entries := logs.FilterMessage("audit event recorded").All()
	require.Len(t, entries, 1)
	raw := entries[0].ContextMap()["event"].(json.RawMessage)
	assert.Equal(t,
		`{"meta":{"ip":"10.0.0.1","tags":["a","b"]},"action":"delete","actor":"bob","resource":"doc-9","id":"audit-20240301000000000001","n":1.5,"ok":null,"timestamp":"2024-02-29T23:59:59.999999"}`,
		string(raw))
}

func TestRecordAudit_MissingFields(t *testing.T) {
	a, logs := newTestAPI(t, testConfig())

	cases := []struct {
		name string
		body string
		want string
	}{
		{"only actor", `{"actor":"alice"}`, `{"error":"Missing required fields","missing":["action","resource"]}`},
		{"empty object", `{}`, `{"error":"Missing required fields","missing":["action","actor","resource"]}`},
		{"only resource", `{"resource":"r","extra":1}`, `{"error":"Missing required fields","missing":["action","actor"]}`},
		{"array", `["action","actor","resource"]`, `{"error":"Missing required fields","missing":["action","actor","resource"]}`},
		{"null", `null`, `{"error":"Missing required fields","missing":["action","actor","resource"]}`},
		{"string", `"action actor resource"`, `{"error":"Missing required fields","missing":["action","actor","resource"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, a, http.MethodPost, "/audit", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assertJSONHeaders(t, w)
			assert.JSONEq(t, tc.want, w.Body.String())
		})
	}
	assert.Equal(t, 0, logs.FilterMessage("audit event recorded").Len())
}

func TestRecordAudit_EmptyValuesAccepted(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())
	w := do(t, a, http.MethodPost, "/audit", `{"action":"","actor":null,"resource":0}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRecordAudit_InvalidJSON(t *testing.T) {
	a, logs := newTestAPI(t, testConfig())

	for _, body := range []string{"not-json", `{"action":`, `{"action":"a"}x`, "\xff\xfe"} {
		w := do(t, a, http.MethodPost, "/audit", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assertJSONHeaders(t, w)
		assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String(), body)
	}
	assert.Equal(t, 0, logs.FilterMessage("audit event recorded").Len())
}

func TestRecordAudit_EmptyBody(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())
	w := do(t, a, http.MethodPost, "/audit", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())
}

func TestRecordAudit_NoContentLength(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/audit",
		strings.NewReader(`{"action":"login","actor":"alice","resource":"session-1"}`))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())
}

func TestRecordAudit_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	a, _ := newTestAPI(t, cfg)

	w := do(t, a, http.MethodPost, "/audit", `{"action":"login","actor":"alice","resource":"session-1"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assertJSONHeaders(t, w)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}

func TestRecordAudit_DeclaredLengthOverCap(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(`{}`))
	req.ContentLength = 1_000_000_000_000
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}

func TestRecordAudit_ShortBody(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())

	body := `{"action":"login","actor":"alice","resource":"session-1"}`
	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(body))
	req.ContentLength = int64(len(body)) + 512
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())
}

func TestRecordAudit_ReadsOnlyDeclaredLength(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())

	event := `{"action":"login","actor":"alice","resource":"session-1"}`
	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(event+"trailing garbage"))
	req.ContentLength = int64(len(event))
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRecordAudit_RequestIDHeader(t *testing.T) {
	a, _ := newTestAPI(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/audit",
		strings.NewReader(`{"action":"login","actor":"alice","resource":"session-1"}`))
	req.Header.Set("X-Request-ID", "req-abc")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "req-abc", w.Header().Get("X-Request-ID"))
}
