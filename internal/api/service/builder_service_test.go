package service

import (
	"api/internal/api/models"
	"api/internal/oas"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerNode(code int) models.Node {
	return models.Node{
		ClientID: "header",
		Type:     models.NodeTypeAPI,
		Data:     models.JSONMap{"headerType": float64(code)},
	}
}

func sampleTrees() (oas.Parameters, oas.Parameters) {
	request := oas.Parameters{
		"query": {{"name": "verbose", "schema": map[string]any{"type": "boolean"}}},
	}
	response := oas.Parameters{
		"Status Codes": {{"name": "200", "schema": map[string]any{"type": "null"}}},
		"body (200)":   {{"name": "id", "schema": map[string]any{"type": "integer"}}},
	}
	return request, response
}

func TestInjectSchema_HeaderCodes(t *testing.T) {
	request, response := sampleTrees()

	nodes := []models.Node{headerNode(1), headerNode(2), headerNode(3), headerNode(4)}
	InjectSchema(nodes, request, response)

	assert.Equal(t, request, nodes[0].Data["out"])
	assert.Equal(t, request, nodes[1].Data["in"])
	assert.Equal(t, response, nodes[2].Data["out"])

	injected, ok := nodes[3].Data["in"].(oas.Parameters)
	require.True(t, ok)
	assert.NotContains(t, injected, "Status Codes")
	assert.Contains(t, injected, "body (200)")
}

func TestInjectSchema_ResponseInStrippingLeavesOriginal(t *testing.T) {
	_, response := sampleTrees()

	nodes := []models.Node{headerNode(4)}
	InjectSchema(nodes, oas.Parameters{}, response)

	assert.Contains(t, response, "Status Codes", "stripping must act on a copy")
}

func TestInjectSchema_NonHeaderNodesUntouched(t *testing.T) {
	request, response := sampleTrees()

	nodes := []models.Node{
		{ClientID: "plain", Type: models.NodeTypeFunction, Data: models.JSONMap{"code": "x"}},
		{ClientID: "bare", Type: models.NodeTypeFunction},
	}
	InjectSchema(nodes, request, response)

	assert.Equal(t, models.JSONMap{"code": "x"}, nodes[0].Data)
	assert.Nil(t, nodes[1].Data)
}

func TestInjectSchema_Idempotent(t *testing.T) {
	request, response := sampleTrees()

	nodes := []models.Node{headerNode(1), headerNode(4)}
	InjectSchema(nodes, request, response)
	first, err := json.Marshal(nodes)
	require.NoError(t, err)

	InjectSchema(nodes, request, response)
	second, err := json.Marshal(nodes)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestSortedBuckets_Deterministic(t *testing.T) {
	params := oas.Parameters{
		"query":  {},
		"body":   {},
		"header": {},
	}

	assert.Equal(t, []string{"body", "header", "query"}, sortedBuckets(params))
}

func TestFieldType(t *testing.T) {
	assert.Equal(t, "string", fieldType(map[string]any{"schema": map[string]any{"type": "string"}}))
	assert.Equal(t, "", fieldType(map[string]any{"schema": map[string]any{"type": nil}}))
	assert.Equal(t, "", fieldType(map[string]any{}))
}
