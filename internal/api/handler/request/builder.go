package request

// CreateBuilder declares an endpoint on a host and provisions its
// builder from the template.
type CreateBuilder struct {
	HostID uint   `json:"host_id" validate:"required"`
	Path   string `json:"path" validate:"required"`
	Method string `json:"method" validate:"required"`
}

// Node is an editor-shaped node payload.
type Node struct {
	ID       string         `json:"id" validate:"required"`
	Type     string         `json:"type" validate:"required"`
	Data     map[string]any `json:"data"`
	Position map[string]any `json:"position"`
}

// DeleteNode identifies a node by its storage id.
type DeleteNode struct {
	ID uint `json:"_id" validate:"required"`
}

// Edge is an editor-shaped edge payload.
type Edge struct {
	Source       string         `json:"source" validate:"required"`
	SourceHandle string         `json:"sourceHandle"`
	Target       string         `json:"target" validate:"required"`
	TargetHandle string         `json:"targetHandle"`
	Animated     bool           `json:"animated"`
	Style        map[string]any `json:"style"`
	Data         map[string]any `json:"data"`
}

// DeleteEdge identifies an edge by its editor id, the stringified
// storage id.
type DeleteEdge struct {
	ID string `json:"id"`
}
