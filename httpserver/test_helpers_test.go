package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"clapperboard/httpserver"
	"clapperboard/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Endpoint.URI = "http://127.0.0.1:5000/"
	cfg.Movies.Resource = "movies"
	return cfg
}

type testResponse struct {
	httpserver.APIResponse
	Result json.RawMessage `json:"result"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
