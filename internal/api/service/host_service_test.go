package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHostname(t *testing.T) {
	assert.Equal(t, "api.example.com", CleanHostname("https://api.example.com/"))
	assert.Equal(t, "api.example.com", CleanHostname("http://api.example.com/v1/pets"))
	assert.Equal(t, "api.example.com:8080", CleanHostname("api.example.com:8080?x=1"))
	assert.Equal(t, "api.example.com", CleanHostname("  api.example.com  "))
}

func TestParseOASDocument_JSON(t *testing.T) {
	spec, err := parseOASDocument([]byte(`{"openapi":"3.0.1","paths":{}}`))
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "3.0.1", spec["openapi"])
}

func TestParseOASDocument_YAML(t *testing.T) {
	raw := []byte("openapi: 3.0.1\nservers:\n  - url: api.example.com\npaths: {}\n")
	spec, err := parseOASDocument(raw)
	require.NoError(t, err)
	require.NotNil(t, spec)

	servers, ok := spec["servers"].([]any)
	require.True(t, ok, "yaml lists should normalize to []any")
	require.Len(t, servers, 1)

	server, ok := servers[0].(map[string]any)
	require.True(t, ok, "yaml mappings should normalize to map[string]any")
	assert.Equal(t, "api.example.com", server["url"])
}

func TestParseOASDocument_Empty(t *testing.T) {
	spec, err := parseOASDocument(nil)
	require.NoError(t, err)
	assert.Nil(t, spec, "empty input selects the fallback document")
}

func TestParseOASDocument_Garbage(t *testing.T) {
	_, err := parseOASDocument([]byte("{not json\n\t- not yaml either: ["))
	assert.Error(t, err)
}

func TestMinimalOASDocument(t *testing.T) {
	spec := minimalOASDocument("api.example.com")

	assert.Equal(t, "3.0.1", spec["openapi"])

	servers := spec["servers"].([]any)
	require.Len(t, servers, 1)
	assert.Equal(t, "api.example.com", servers[0].(map[string]any)["url"])
}
