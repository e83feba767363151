package request

import "encoding/json"

// RegisterHost registers an upstream host, optionally with its OpenAPI
// document. OAS may be a JSON object or a YAML string.
type RegisterHost struct {
	Hostname    string          `json:"hostname" validate:"required"`
	Port        int             `json:"port"`
	ForwardHost string          `json:"forward_host"`
	OAS         json.RawMessage `json:"oas"`
}

// PatchHostConfig merges one field into the host's behavior config.
type PatchHostConfig struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}
