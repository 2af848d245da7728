package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wafstack/testutils"
)

func newTestServer(t *testing.T) http.Handler {
	return NewServer(testutils.NewTestLogger(t)).Routes()
}

func TestHealthz(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func TestDefinitionsCatalog(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/definitions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var defs []Definition
	err := json.Unmarshal(rec.Body.Bytes(), &defs)
	assert.Nil(err)
	assert.Len(defs, 7)
	assert.Equal("rate_limiting", defs[0].Key)
	assert.Equal(1, defs[0].Priority)
}

func TestValidateEndpoint(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	// A config overriding only a few fields passes; defaults fill the rest.
	body := `{"webAcl": {"name": "edge-acl"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"valid":true}`, rec.Body.String())

	// An invalid enum is reported, not a transport error.
	body = `{"webAcl": {"name": "edge-acl", "defaultAction": "count"}}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Nil(err)
	assert.False(resp.Valid)
	assert.Contains(resp.Error, "default_action")
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	body := `{"webAcl": {"name": "edge-acl"}, "unknownSection": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusBadRequest, rec.Code)
}

func TestPlanEndpoint(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	body := `{
		"webAcl": {
			"name": "edge-acl",
			"blockedAddresses": ["192.168.1.100/32"]
		},
		"logging": {"enabled": true}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Plan struct {
			ID        string `json:"id"`
			Resources []struct {
				Type    string `json:"type"`
				Logical string `json:"logical"`
			} `json:"resources"`
		} `json:"plan"`
		Outputs struct {
			IPSetARN      *string `json:"ipSetArn"`
			ALBARN        *string `json:"albArn"`
			ResourceCount int     `json:"resourceCount"`
		} `json:"outputs"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Nil(err)

	assert.NotEmpty(resp.Plan.ID)
	assert.Equal(len(resp.Plan.Resources), resp.Outputs.ResourceCount)
	assert.NotNil(resp.Outputs.IPSetARN)
	assert.Nil(resp.Outputs.ALBARN)

	logicals := make(map[string]bool)
	for _, r := range resp.Plan.Resources {
		logicals[r.Logical] = true
	}
	assert.True(logicals["web_acl"])
	assert.True(logicals["blocked_ip_set"])
	assert.True(logicals["waf_log_group"])
	assert.True(logicals["waf_logging_configuration"])
}

func TestPlanRejectsInvalidConfig(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t)

	body := `{"webAcl": {"name": "edge-acl", "rateLimit": 50}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(rec.Body.String(), "rate_limit")
}
