package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-paramgen/pkg/server"
)

const storeDocument = `
module: store
types:
  Item:
    fields:
      - name: sku
        type: string
      - name: qty
        type: int
operations:
  - name: addItem
    accessor: post
    path: items
    params:
      - name: item
        type: Item
  - name: legacy
    params:
      - name: raw
        type: json
`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.NewHandler(nil, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealthz(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestListOperations(t *testing.T) {
	srv := newServer(t)
	resp, body := post(t, srv, "/v1/operations", server.GenerateRequest{Document: storeDocument})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "store", body["module"])
	ops, ok := body["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 2)
	first := ops[0].(map[string]any)
	assert.Equal(t, "addItem", first["name"])
	assert.Equal(t, "post", first["accessor"])
	assert.Equal(t, "/items", first["path"])
}

func TestGenerateBundle(t *testing.T) {
	srv := newServer(t)
	resp, body := post(t, srv, "/v1/generate", server.GenerateRequest{Document: storeDocument})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "store", body["module"])
	artifacts, ok := body["artifacts"].([]any)
	require.True(t, ok)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "postItems", artifacts[0].(map[string]any)["name"])
}

func TestGenerateSingleOperation(t *testing.T) {
	srv := newServer(t)
	resp, body := post(t, srv, "/v1/generate/legacy", server.GenerateRequest{Document: storeDocument})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	artifacts := body["artifacts"].([]any)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "legacy", artifacts[0].(map[string]any)["name"])
}

func TestGenerateUnknownOperationSuggests(t *testing.T) {
	srv := newServer(t)
	resp, body := post(t, srv, "/v1/generate/addItm", server.GenerateRequest{Document: storeDocument})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, "UNKNOWN_OPERATION", body["code"])
	suggestions := body["suggestions"].(map[string]any)
	assert.Contains(t, suggestions["addItm"], "addItem")
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/v1/generate", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := post(t, srv, "/v1/generate", server.GenerateRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_DOCUMENT", body["code"])

	resp, body = post(t, srv, "/v1/generate", server.GenerateRequest{Document: storeDocument, Format: "openapi"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_DOCUMENT", body["code"])
}

func TestValidateReportsSkippedOperations(t *testing.T) {
	srv := newServer(t)
	doc := `
module: lint
operations:
  - name: subscribe
    params:
      - name: handler
        type: function
`
	resp, body := post(t, srv, "/v1/validate", server.GenerateRequest{Document: doc})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, false, body["valid"])
	issues := body["issues"].([]any)
	require.NotEmpty(t, issues)
	assert.Equal(t, "skipped-operation", issues[0].(map[string]any)["kind"])
}

func TestPreviewReportsEnabledElements(t *testing.T) {
	srv := newServer(t)
	doc := `
module: preview
operations:
  - name: setValue
    params:
      - name: value
        type: string|int
`
	resp, body := post(t, srv, "/v1/preview/setValue", server.GenerateRequest{
		Document: doc,
		Values:   map[string]any{"valueDataType": "int"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"valueDataType", "value_int"}, body["enabled"])
}
