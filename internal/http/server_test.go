package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyspend/internal/app"
	"familyspend/internal/cache"
	"familyspend/internal/core"
	"familyspend/internal/gateway"
	"familyspend/internal/gateway/gatewaytest"
	applog "familyspend/internal/log"
	"familyspend/internal/prefs"
	"familyspend/internal/render"
	"familyspend/web"
)

type testEnv struct {
	fake    *gatewaytest.Server
	srv     *Server
	pending *cache.LRUCache[app.Command]
}

func newTestEnv(t *testing.T, configure ...func(*Config)) *testEnv {
	t.Helper()
	fake := gatewaytest.NewServer(t)
	fake.SetNow(time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))

	renderer, err := render.New(web.TemplatesFS, applog.Discard())
	require.NoError(t, err)

	a := app.New(app.Deps{
		Gateway:  gateway.New(fake.URL()),
		Renderer: renderer,
		Prefs:    prefs.NewMemoryStore(),
	})
	t.Cleanup(a.Close)
	require.NoError(t, a.Bootstrap(context.Background(), render.NewFrame()))

	pending := cache.NewLRUCache[app.Command](8, time.Minute)
	cfg := Config{Addr: ":0", App: a, Renderer: renderer, Pending: pending}
	for _, fn := range configure {
		fn(&cfg)
	}
	return &testEnv{
		fake:    fake,
		srv:     NewServer(cfg),
		pending: pending,
	}
}

func (e *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	e.srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestTrustedProxiesNameTheClient(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEnv(t, func(c *Config) {
		c.Logger = applog.NewText(&buf, slog.LevelInfo, "test")
		c.TrustedProxies = []string{"198.51.100.0/24", "nope"}
	})
	assert.Contains(t, buf.String(), "Ignoring trusted proxy")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "198.51.100.4:5123"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rr := httptest.NewRecorder()
	e.srv.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), "client_ip=203.0.113.7")
}

func TestIndexAndHealth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "FamilySpend")
	assert.Contains(t, body, `<option value="1" selected>Dad</option>`)
	assert.Contains(t, body, `data-view="dashboard"`)
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	for _, path := range []string{"/health", "/ready", "/static/app.js", "/static/app.css"} {
		rr := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/nope", nil).Code)
}

func TestCommand_SwitchView(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/cmd/view", url.Values{"view": {"reports"}})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<div id="expense-list" hx-swap-oob="innerHTML">`)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"view-changed":{"view":"reports"}`)
}

func TestCommand_InvalidInputToastsAndSkipsGateway(t *testing.T) {
	env := newTestEnv(t)
	before := len(env.fake.Calls())

	rr := env.do(http.MethodPost, "/cmd/expense", url.Values{
		"profile_id": {"1"}, "category_id": {"1"}, "amount": {"abc"}, "date": {"2025-03-01"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"type":"error"`)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "Please check the form values")
	assert.Len(t, env.fake.Calls(), before)
}

func TestCommand_GatewayFailureToasts(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Fail("POST", "/expenses")

	rr := env.do(http.MethodPost, "/cmd/expense", url.Values{
		"profile_id": {"1"}, "category_id": {"1"}, "amount": {"10"}, "date": {"2025-03-01"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var trig map[string]Notification
	require.NoError(t, json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &trig))
	assert.Equal(t, NotificationError, trig["show-notification"].Type)
	assert.Empty(t, rr.Body.String())
}

func TestCommand_Unknown(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, "/cmd/nope", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(http.MethodGet, "/cmd/theme", nil).Code)
}

func TestCommand_ToggleTheme(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/cmd/theme", nil)

	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"theme-changed":{"theme":"dark"}`)
	assert.Contains(t, rr.Body.String(), `id="chrome"`)
	assert.Contains(t, env.do(http.MethodGet, "/", nil).Body.String(), `class="dark-theme"`)
}

var tokenPattern = regexp.MustCompile(`/confirm/([0-9a-f-]{36})`)

func TestConfirmFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.fake.AddExpense(core.ExpenseInput{ProfileID: 1, CategoryID: 1, Amount: core.NewMoney(40), Date: core.NewDate(2025, 3, 10)})
	target := url.Values{"id": {itoa(id)}}

	// ask
	rr := env.do(http.MethodPost, "/cmd/expense/delete", target)
	require.Equal(t, http.StatusOK, rr.Code)
	m := tokenPattern.FindStringSubmatch(rr.Body.String())
	require.Len(t, m, 2, rr.Body.String())
	assert.Equal(t, 1, env.pending.Size())
	assert.Len(t, env.fake.Expenses(), 1)

	// decline
	rr = env.do(http.MethodPost, "/confirm/"+m[1], url.Values{"decision": {"no"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<div id="confirm-dialog" hx-swap-oob="innerHTML">`)
	assert.NotRegexp(t, tokenPattern, rr.Body.String())
	assert.Len(t, env.fake.Expenses(), 1)
	assert.Zero(t, env.pending.Size())

	// a used token is not honored twice
	rr = env.do(http.MethodPost, "/confirm/"+m[1], url.Values{"decision": {"yes"}})
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"type":"error"`)
	assert.Len(t, env.fake.Expenses(), 1)

	// ask again and approve
	rr = env.do(http.MethodPost, "/cmd/expense/delete", target)
	m = tokenPattern.FindStringSubmatch(rr.Body.String())
	require.Len(t, m, 2)
	rr = env.do(http.MethodPost, "/confirm/"+m[1], url.Values{"decision": {"yes"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, env.fake.Expenses())
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"type":"success"`)
}

func TestExportDownload(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddExpense(core.ExpenseInput{ProfileID: 1, CategoryID: 1, Amount: core.NewMoney(40), Date: core.NewDate(2025, 3, 10), Note: "tea"})

	rr := env.do(http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=expenses_20250320.csv`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "tea")

	env.fake.Fail("GET", "/export")
	assert.Equal(t, http.StatusBadGateway, env.do(http.MethodGet, "/export", nil).Code)
}

func TestSuspiciousRequestRejected(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/.git/config", nil).Code)
}

func itoa(id core.ID) string {
	return strconv.FormatInt(int64(id), 10)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodPost, "/cmd/view", url.Values{"view": {"reports"}})
	env.do(http.MethodPost, "/cmd/expense", url.Values{"amount": {"abc"}})
	env.do(http.MethodPost, "/cmd/expense/delete", url.Values{"id": {"1"}})

	rr := env.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `familyspend_commands_total{command="switch_view",result="ok"} 1`)
	assert.Contains(t, body, `familyspend_commands_total{command="submit_expense",result="invalid"} 1`)
	assert.Contains(t, body, `familyspend_commands_total{command="delete_expense",result="confirm"} 1`)
	assert.Contains(t, body, `familyspend_pending_confirmations 1`)
	assert.Contains(t, body, `route="POST /cmd/{name...}"`)
}
