package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	verifyErr  error
	extractErr error
	verified   []model.Assignment
	names      []string
}

func (s *stubAI) VerifyCategories(_ context.Context, _ []model.Assignment) ([]model.Assignment, error) {
	return s.verified, s.verifyErr
}

func (s *stubAI) ExtractItems(_ context.Context, _ service.Image) ([]string, error) {
	return s.names, s.extractErr
}

func newTestServer(stub *stubAI) *httptest.Server {
	srv := New("127.0.0.1:0", stub, stub, nil)
	return httptest.NewServer(srv.Handler())
}

func TestHandleVerify(t *testing.T) {
	stub := &stubAI{
		verified: []model.Assignment{
			{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
		},
	}
	ts := newTestServer(stub)
	defer ts.Close()

	body := `{"items":[{"id":"1","name":"milk","category":"Other"}]}`
	resp, err := http.Post(ts.URL+"/api/verify", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Items []model.Assignment `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Dairy & Eggs", result.Items[0].Category)
}

func TestHandleVerifyErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		stub       *stubAI
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       "{not json",
			stub:       &stubAI{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty items",
			body:       `{"items":[]}`,
			stub:       &stubAI{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "verifier failure",
			body:       `{"items":[{"id":"1","name":"milk","category":"Other"}]}`,
			stub:       &stubAI{verifyErr: errors.New("boom")},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(tt.stub)
			defer ts.Close()

			resp, err := http.Post(ts.URL+"/api/verify", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var result map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.NotEmpty(t, result["error"])
		})
	}
}

func TestHandleScan(t *testing.T) {
	stub := &stubAI{names: []string{"milk", "eggs", "bread"}}
	ts := newTestServer(stub)
	defer ts.Close()

	body := `{"image":{"mediaType":"image/jpeg","base64":"aGVsbG8="}}`
	resp, err := http.Post(ts.URL+"/api/scan", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, []string{"milk", "eggs", "bread"}, result.Items)
}

func TestHandleScanMissingImage(t *testing.T) {
	ts := newTestServer(&stubAI{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/scan", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndCORS(t *testing.T) {
	ts := newTestServer(&stubAI{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/verify", nil)
	require.NoError(t, err)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = preflight.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, preflight.StatusCode)
}
