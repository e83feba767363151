package service

import (
	"api/internal/api/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "api.example.com/pets", NormalizeURL("https://api.example.com/pets"))
	assert.Equal(t, "api.example.com/pets", NormalizeURL("http://api.example.com/pets"))
	assert.Equal(t, "api.example.com/pets", NormalizeURL("api.example.com/pets?page=2"))
	assert.Equal(t, "ftp://api.example.com", NormalizeURL("ftp://api.example.com"))
}

func TestBestHostMatch_LongestPrefixWins(t *testing.T) {
	hosts := []models.Host{
		{ID: 1, Hostname: "api.example.com"},
		{ID: 2, Hostname: "api.example.com/v2"},
		{ID: 3, Hostname: "other.example.com"},
	}

	best := BestHostMatch(hosts, "api.example.com/v2/pets")
	require.NotNil(t, best)
	assert.Equal(t, uint(2), best.ID)

	best = BestHostMatch(hosts, "api.example.com/v1/pets")
	require.NotNil(t, best)
	assert.Equal(t, uint(1), best.ID)
}

func TestBestHostMatch_NoMatch(t *testing.T) {
	hosts := []models.Host{
		{ID: 1, Hostname: "api.example.com"},
	}
	assert.Nil(t, BestHostMatch(hosts, "unrelated.io/pets"))
}

func TestBestHostMatch_TieKeepsFirstSeen(t *testing.T) {
	hosts := []models.Host{
		{ID: 7, Hostname: "api.example.com"},
		{ID: 8, Hostname: "api.example.com"},
	}

	best := BestHostMatch(hosts, "api.example.com/pets")
	require.NotNil(t, best)
	assert.Equal(t, uint(7), best.ID)
}

func TestBestDocumentMatch_SchemeStripped(t *testing.T) {
	docs := []models.OAS{
		{ID: 1, Spec: models.JSONMap{
			"servers": []any{map[string]any{"url": "https://api.example.com"}},
		}},
		{ID: 2, Spec: models.JSONMap{
			"servers": []any{map[string]any{"url": "https://api.example.com/v2"}},
		}},
	}

	best := BestDocumentMatch(docs, "api.example.com/v2/pets")
	require.NotNil(t, best)
	assert.Equal(t, uint(2), best.ID)
}

func TestBestDocumentMatch_MultipleServers(t *testing.T) {
	docs := []models.OAS{
		{ID: 4, Spec: models.JSONMap{
			"servers": []any{
				map[string]any{"url": "http://staging.example.com"},
				map[string]any{"url": "http://api.example.com"},
			},
		}},
	}

	best := BestDocumentMatch(docs, "api.example.com/pets")
	require.NotNil(t, best)
	assert.Equal(t, uint(4), best.ID)

	assert.Nil(t, BestDocumentMatch(docs, "prod.example.com/pets"))
}
