package models

// Node type tags understood by the coordinator. The set is open; these
// are the ones with special cascade behavior.
const (
	NodeTypeAPI       = "apiNode"
	NodeTypeFunction  = "functionNode"
	NodeTypeSendEvent = "sendEventNode"
	NodeTypeEvent     = "eventNode"
	NodeTypeToast     = "toastNode"
)

// Header-node codes. A node whose data carries one of these exposes the
// resolved endpoint's schema to the rest of the graph.
const (
	HeaderRequestOut  = 1 // presents the endpoint's inputs as its own outputs
	HeaderRequestIn   = 2 // consumes the endpoint's inputs
	HeaderResponseOut = 3 // produces the endpoint's outputs
	HeaderResponseIn  = 4 // consumes the outputs, status-code metadata stripped
)

// Node is one vertex of a flow graph. The storage id is canonical; the
// editor-assigned client id exists because graph templates mint ids
// before anything is persisted, and edges reference nodes by it.
type Node struct {
	ID       uint    `gorm:"primaryKey" json:"_id"`
	ClientID string  `gorm:"column:client_id;index" json:"id"`
	Type     string  `json:"type"`
	Data     JSONMap `gorm:"type:jsonb" json:"data"`
	Position JSONMap `gorm:"type:jsonb" json:"position,omitempty"`
}

func (Node) TableName() string { return "builder_nodes" }

// HeaderType returns the schema-injection code of a header node, or 0.
func (slf Node) HeaderType() int {
	if slf.Data == nil {
		return 0
	}
	switch v := slf.Data["headerType"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// StrucID returns the owned event-structure id of a sendEventNode, or 0.
func (slf Node) StrucID() uint {
	if slf.Data == nil {
		return 0
	}
	if v, ok := slf.Data["struc_id"].(float64); ok {
		return uint(v)
	}
	return 0
}
