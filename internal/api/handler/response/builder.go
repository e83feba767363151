package response

import (
	"api/internal/api/models"
	"api/internal/api/service"
)

// ResolutionIssue travels back with status 200 when the request was
// valid but a piece of the chain is missing; the editor offers to
// create it.
type ResolutionIssue struct {
	Error string `json:"error"`
	Host  uint   `json:"host,omitempty"`
}

// Builder is the resolution payload: the matched OpenAPI document plus
// the materialized graph. Issue is false on success and a
// ResolutionIssue otherwise.
type Builder struct {
	Issue     any                   `json:"issue"`
	OAS       models.JSONMap        `json:"oas,omitempty"`
	BuilderID string                `json:"builderId,omitempty"`
	Builder   *service.BuilderGraph `json:"builder,omitempty"`
}
