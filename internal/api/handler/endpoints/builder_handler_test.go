package endpoints

import (
	"api/internal/api/models"
	"api/internal/api/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolutionContext() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	return recorder, c
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestRespondResolutionError_NoHostIsServerError(t *testing.T) {
	h := &builderHandler{logger: zerolog.Nop()}
	recorder, c := newResolutionContext()

	h.respondResolutionError(c, nil, &service.ResolutionError{Code: service.CodeNoHost})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decodeBody(t, recorder)
	issue, ok := payload["issue"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, service.CodeNoHost, issue["error"])
}

func TestRespondResolutionError_MissingEndpointIsAdvisory(t *testing.T) {
	h := &builderHandler{logger: zerolog.Nop()}
	recorder, c := newResolutionContext()

	result := &service.MatchResult{
		OAS: &models.OAS{ID: 3, Spec: models.JSONMap{"openapi": "3.0.1"}},
	}
	h.respondResolutionError(c, result, &service.ResolutionError{Code: service.CodeNoEndpoint, HostID: 7})

	assert.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)
	issue, ok := payload["issue"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, service.CodeNoEndpoint, issue["error"])
	assert.Equal(t, float64(7), issue["host"])

	oas, ok := payload["oas"].(map[string]any)
	require.True(t, ok, "advisory payload carries the matched document")
	assert.Equal(t, "3.0.1", oas["openapi"])
}

func TestRespondResolutionError_MissingBuilderIsAdvisory(t *testing.T) {
	h := &builderHandler{logger: zerolog.Nop()}
	recorder, c := newResolutionContext()

	h.respondResolutionError(c, nil, &service.ResolutionError{Code: service.CodeNoBuilder})

	assert.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)
	issue, ok := payload["issue"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, service.CodeNoBuilder, issue["error"])
	assert.NotContains(t, payload, "oas")
}

func TestRespondResolutionError_UnclassifiedIsServerError(t *testing.T) {
	h := &builderHandler{logger: zerolog.Nop()}
	recorder, c := newResolutionContext()

	h.respondResolutionError(c, nil, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestEdgeIDFromPayload(t *testing.T) {
	id, ok := edgeIDFromPayload(map[string]any{"id": "42", "animated": true})
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	id, ok = edgeIDFromPayload(map[string]any{"_id": float64(7)})
	require.True(t, ok)
	assert.Equal(t, uint(7), id)

	_, ok = edgeIDFromPayload(map[string]any{"id": "not-a-number"})
	assert.False(t, ok)

	_, ok = edgeIDFromPayload(map[string]any{"animated": true})
	assert.False(t, ok)
}
