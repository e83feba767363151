package request

// CreatePlaybook registers an event playbook.
type CreatePlaybook struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// RecordEvent appends one event to the stream.
type RecordEvent struct {
	Event string         `json:"event" validate:"required"`
	Type  string         `json:"type"`
	Data  map[string]any `json:"data"`
}
