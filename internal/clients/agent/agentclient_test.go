package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	url string
}

func (c testConfig) URL() string     { return c.url }
func (c testConfig) AgentID() string { return "agent-1" }
func (c testConfig) APIKey() string  { return "secret" }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(testConfig{url: server.URL}), server
}

func Test_OnStringResponse_ShouldReturnItVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "agent-1", req.AgentID)
		assert.Equal(t, "secret", r.Header.Get("apikey"))

		_, _ = w.Write([]byte(`{"success": true, "response": "Spend less on coffee."}`))
	})

	answer, err := client.Ask(context.Background(), "how to save?")

	require.NoError(t, err)
	assert.Equal(t, "Spend less on coffee.", answer)
}

func Test_OnStructuredResponse_ShouldPreferSummary(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true,
			"response": {"summary": "short", "detailed_analysis": "long"}}`))
	})

	answer, err := client.Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "short", answer)
}

func Test_OnStructuredResponseWithoutSummary_ShouldFallBackToDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "response": {"detailed_analysis": "long"}}`))
	})

	answer, err := client.Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "long", answer)
}

func Test_OnUnknownResponseShape_ShouldReturnRawJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "response": {"verdict": "fine"}}`))
	})

	answer, err := client.Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.JSONEq(t, `{"verdict": "fine"}`, answer)
}

func Test_OnReportedFailure_ShouldReturnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	})

	_, err := client.Ask(context.Background(), "q")

	assert.Error(t, err)
}

func Test_OnErrorStatus_ShouldReturnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Ask(context.Background(), "q")

	assert.Error(t, err)
}

func Test_OnMalformedBody_ShouldReturnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	})

	_, err := client.Ask(context.Background(), "q")

	assert.Error(t, err)
}

func Test_OnUnreachableService_ShouldReturnError(t *testing.T) {
	client, server := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {})
	server.Close()

	_, err := client.Ask(context.Background(), "q")

	assert.Error(t, err)
}
