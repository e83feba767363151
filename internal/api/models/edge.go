package models

import (
	"encoding/json"
	"strconv"
)

// Well-known target handles. Function-event and script-accept handles
// allow multiple inbound edges; every other (target, targetHandle) pair
// accepts at most one.
const (
	HandleFunctionEvent = "sera.functionEvent"
	HandleScriptAccept  = "sera.scriptAccept"
	HandleStart         = "sera.sera_start"
)

// Edge is one directed connection between two node client ids.
type Edge struct {
	ID           uint    `gorm:"primaryKey" json:"_id"`
	Source       string  `gorm:"index" json:"source"`
	Target       string  `gorm:"index" json:"target"`
	SourceHandle string  `json:"sourceHandle"`
	TargetHandle string  `gorm:"index" json:"targetHandle"`
	Animated     bool    `json:"animated"`
	Style        JSONMap `gorm:"type:jsonb" json:"style,omitempty"`
	Data         JSONMap `gorm:"type:jsonb" json:"data,omitempty"`
}

func (Edge) TableName() string { return "builder_edges" }

// EditorID is the client-facing identifier: the storage id, derived and
// never independently settable.
func (slf Edge) EditorID() string {
	return strconv.FormatUint(uint64(slf.ID), 10)
}

// MarshalJSON aliases the storage id onto the "id" field the editor uses.
func (slf Edge) MarshalJSON() ([]byte, error) {
	type alias Edge
	return json.Marshal(struct {
		alias
		EditorID string `json:"id"`
	}{alias(slf), slf.EditorID()})
}

// ExemptFromUniqueness reports whether the edge's target handle allows
// multiple inbound edges.
func ExemptFromUniqueness(targetHandle string) bool {
	return targetHandle == HandleFunctionEvent || targetHandle == HandleScriptAccept
}
