package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scheduler"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scraper"
	"github.com/stake-plus/chainfund-monitor/src/monitor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeSched struct {
	started    bool
	stopped    bool
	interval   int
	monitored  []uint64
	monitorErr error
}

func (f *fakeSched) Start(intervalMinutes int) {
	f.started = true
	f.interval = intervalMinutes
}

func (f *fakeSched) Stop() { f.stopped = true }

func (f *fakeSched) GetStatus() scheduler.Status {
	return scheduler.Status{IsRunning: f.started, IntervalMinutes: f.interval}
}

func (f *fakeSched) MonitorOne(_ context.Context, campaignID uint64) error {
	f.monitored = append(f.monitored, campaignID)
	return f.monitorErr
}

type fakeEvidence struct {
	evidence []scraper.Evidence
	err      error
}

func (f *fakeEvidence) GetEvidence(context.Context, uint64, string) ([]scraper.Evidence, error) {
	return f.evidence, f.err
}

func newTestRouter(t *testing.T, sched *fakeSched, ev *fakeEvidence) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(config.Config{JWTSecret: testSecret}, sched, ev)
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"addr": "0xadmin"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireJWT(t *testing.T) {
	r := newTestRouter(t, &fakeSched{}, &fakeEvidence{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodPost, "/v1/admin/scraper/start", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/v1/admin/scraper/status", "bad-token", "").Code)
}

func TestStartHandler(t *testing.T) {
	sched := &fakeSched{}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/start", adminToken(t), `{"intervalMinutes":15}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sched.started)
	assert.Equal(t, 15, sched.interval)
}

func TestStartHandlerDefaultInterval(t *testing.T) {
	sched := &fakeSched{}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/start", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sched.started)
	assert.Zero(t, sched.interval) // scheduler substitutes its default
}

func TestStartHandlerRejectsNegativeInterval(t *testing.T) {
	sched := &fakeSched{}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/start", adminToken(t), `{"intervalMinutes":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not be negative")
	assert.False(t, sched.started)
}

func TestStopHandler(t *testing.T) {
	sched := &fakeSched{}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/stop", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sched.stopped)
}

func TestStatusHandler(t *testing.T) {
	sched := &fakeSched{started: true, interval: 30}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodGet, "/v1/admin/scraper/status", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)

	var st scheduler.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.True(t, st.IsRunning)
	assert.Equal(t, 30, st.IntervalMinutes)
}

func TestMonitorOneHandler(t *testing.T) {
	sched := &fakeSched{}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/monitor/42", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint64{42}, sched.monitored)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestMonitorOneHandlerFailure(t *testing.T) {
	sched := &fakeSched{monitorErr: errors.New("campaign 42 not found")}
	r := newTestRouter(t, sched, &fakeEvidence{})

	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/monitor/42", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMonitorOneHandlerBadID(t *testing.T) {
	r := newTestRouter(t, &fakeSched{}, &fakeEvidence{})
	w := doRequest(r, http.MethodPost, "/v1/admin/scraper/monitor/abc", adminToken(t), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvidenceHandler(t *testing.T) {
	ev := &fakeEvidence{evidence: []scraper.Evidence{{Source: "twitter", Title: "t"}}}
	r := newTestRouter(t, &fakeSched{}, ev)

	w := doRequest(r, http.MethodGet, "/v1/milestones/1/m1/evidence", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"twitter"`)
}

func TestEvidenceHandlerErrorsStayInternal(t *testing.T) {
	ev := &fakeEvidence{err: errors.New("sources unavailable")}
	r := newTestRouter(t, &fakeSched{}, ev)

	w := doRequest(r, http.MethodGet, "/v1/milestones/1/m1/evidence", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"evidence":[]`)
}
