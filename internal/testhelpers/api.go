package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/require"
)

// DoJSON sends body (marshalled unless it is already []byte or nil) to
// handler and returns the recorded response.
func (h *TestHelper) DoJSON(handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(h.T, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader).WithContext(h.Ctx)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DecodeBody unmarshals the recorder body into out, failing the test on
// malformed JSON.
func (h *TestHelper) DecodeBody(rec *httptest.ResponseRecorder, out any) {
	require.NoError(h.T, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
}

// DoRequest performs a request against a live server and asserts that no
// network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and restores it for further reads.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return string(bodyBytes)
}
