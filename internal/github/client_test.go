package github

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup starts a test server and returns a client bound to owner/repo that
// sends both REST and GraphQL requests to it.
func setup(t *testing.T, opts ...Option) (*Client, *http.ServeMux, string) {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := newClient(server.Client(), "owner", "repo", opts...)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.rest.BaseURL = baseURL
	client.graphql = githubv4.NewEnterpriseClient(server.URL+"/graphql", server.Client())

	return client, mux, server.URL
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGetTokenPrefersConfigured(t *testing.T) {
	token, err := GetToken("configured")
	require.NoError(t, err)
	assert.Equal(t, "configured", token)
}

func TestWithGraphQLLookup(t *testing.T) {
	assert.False(t, newClient(http.DefaultClient, "o", "r").useGraphQL)
	assert.True(t, newClient(http.DefaultClient, "o", "r", WithGraphQLLookup()).useGraphQL)
}
