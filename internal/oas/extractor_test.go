package oas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		"openapi": "3.0.1",
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet": map[string]any{
					"properties": map[string]any{
						"id":   map[string]any{"type": "integer", "description": "Unique id"},
						"name": map[string]any{"type": "string"},
						"tags": map[string]any{"type": "array"},
					},
				},
				"PetAlias": map[string]any{
					"$ref": "#/components/schemas/Pet",
				},
			},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"post": map[string]any{
					"parameters": []any{
						map[string]any{"name": "verbose", "in": "query", "schema": map[string]any{"type": "boolean"}},
						map[string]any{"name": "x-trace", "in": "header", "schema": map[string]any{"type": "string"}},
					},
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Pet"},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Created pet",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/Pet"},
								},
							},
							"headers": map[string]any{
								"X-Rate-Limit": map[string]any{
									"description": "Requests remaining",
									"schema":      map[string]any{"type": "integer"},
								},
							},
						},
						"404": map[string]any{
							"description": "Not found",
						},
					},
				},
			},
		},
	}
}

func TestOperation_Lookup(t *testing.T) {
	doc := sampleDocument()

	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op, "declared pathway should resolve")

	assert.Nil(t, doc.Operation("/pets", "GET"))
	assert.Nil(t, doc.Operation("/missing", "POST"))
}

func TestResolveRef(t *testing.T) {
	doc := sampleDocument()

	resolved := doc.ResolveRef("#/components/schemas/Pet")
	require.NotNil(t, resolved)
	assert.Contains(t, resolved, "properties")

	assert.Nil(t, doc.ResolveRef("#/components/schemas/Nope"))
	assert.Nil(t, doc.ResolveRef("not-a-ref"))
}

func TestRequestParameters_Buckets(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	params := doc.RequestParameters(op)

	for _, bucket := range []string{"query", "body", "path", "cookie", "header"} {
		assert.Contains(t, params, bucket)
	}

	require.Len(t, params["query"], 1)
	assert.Equal(t, "verbose", params["query"][0]["name"])

	require.Len(t, params["header"], 1)
	assert.Equal(t, "x-trace", params["header"][0]["name"])

	assert.Empty(t, params["path"])
	assert.Empty(t, params["cookie"])
}

func TestRequestParameters_BodyFollowsRef(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	params := doc.RequestParameters(op)
	require.Len(t, params["body"], 3)

	byName := map[string]map[string]any{}
	for _, field := range params["body"] {
		byName[field["name"].(string)] = field
	}

	// Types pass through verbatim.
	assert.Equal(t, map[string]any{"type": "integer"}, byName["id"]["schema"])
	assert.Equal(t, map[string]any{"type": "array"}, byName["tags"]["schema"])

	assert.Equal(t, "Unique id", byName["id"]["description"])
	assert.Equal(t, "No description available", byName["name"]["description"])
}

func TestRequestParameters_RefChainEquivalence(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	direct := doc.RequestParameters(op)

	aliased := sampleDocument()
	aliasedOp := aliased.Operation("/pets", "POST")
	body := aliasedOp["requestBody"].(map[string]any)
	content := body["content"].(map[string]any)
	media := content["application/json"].(map[string]any)
	media["schema"] = map[string]any{"$ref": "#/components/schemas/PetAlias"}

	viaAlias := aliased.RequestParameters(aliasedOp)

	assert.Equal(t, direct["body"], viaAlias["body"], "a ref chain should extract the same fields as a direct ref")
}

func TestRequestParameters_RefCycleTerminates(t *testing.T) {
	doc := Document{
		"openapi": "3.0.1",
		"components": map[string]any{
			"schemas": map[string]any{
				"A": map[string]any{"$ref": "#/components/schemas/B"},
				"B": map[string]any{"$ref": "#/components/schemas/A"},
			},
		},
		"paths": map[string]any{
			"/loop": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/A"},
							},
						},
					},
				},
			},
		},
	}

	op := doc.Operation("/loop", "POST")
	require.NotNil(t, op)

	params := doc.RequestParameters(op)
	assert.Empty(t, params["body"], "a cyclic ref chain extracts nothing instead of recursing forever")
}

func TestResponseParameters_StatusCodesAlwaysPresent(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	params := doc.ResponseParameters(op)

	require.Len(t, params["Status Codes"], 2)

	byCode := map[string]map[string]any{}
	for _, detail := range params["Status Codes"] {
		byCode[detail["name"].(string)] = detail
	}

	// A code with a body reports type "null"; a body-less code keeps nil.
	assert.Equal(t, map[string]any{"type": "null"}, byCode["200"]["schema"])
	assert.Equal(t, map[string]any{"type": nil}, byCode["404"]["schema"])

	assert.Equal(t, "Created pet", byCode["200"]["description"])
}

func TestResponseParameters_BodyBucketPerCode(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	params := doc.ResponseParameters(op)

	require.Contains(t, params, "body (200)")
	require.Contains(t, params, "body (404)")
	assert.Len(t, params["body (200)"], 3)
	assert.Empty(t, params["body (404)"])
}

func TestResponseParameters_HeadersAggregated(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	params := doc.ResponseParameters(op)

	require.Len(t, params["headers"], 1)
	header := params["headers"][0]
	assert.Equal(t, "X-Rate-Limit", header["name"])
	assert.Equal(t, map[string]any{"type": "integer"}, header["schema"])
	assert.Equal(t, "Requests remaining", header["description"])
}

func TestParameters_DeepCopyIsIndependent(t *testing.T) {
	doc := sampleDocument()
	op := doc.Operation("/pets", "POST")
	require.NotNil(t, op)

	original := doc.ResponseParameters(op)
	clone := original.DeepCopy()
	delete(clone, "Status Codes")

	assert.Contains(t, original, "Status Codes")
	assert.NotContains(t, clone, "Status Codes")
}
