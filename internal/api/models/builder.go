package models

// Builder is the endpoint-flavored inventory: an ordered reference list
// of node and edge storage ids, keyed by a generated id. The inventory
// owns ordering and membership; nodes and edges carry no back-reference.
type Builder struct {
	ID      uint   `gorm:"primaryKey" json:"_id"`
	Nodes   IDList `gorm:"type:jsonb" json:"nodes"`
	Edges   IDList `gorm:"type:jsonb" json:"edges"`
	Enabled bool   `json:"enabled"`
}

func (Builder) TableName() string { return "builder_inventory" }

// BuilderTemplate is the seed document for new endpoint builders. The
// document holds full node/edge definitions with {{host}}, {{method}},
// {{path}} and {{gen-N}} placeholders substituted at provisioning time.
type BuilderTemplate struct {
	ID       uint    `gorm:"primaryKey" json:"_id"`
	Template bool    `gorm:"index" json:"template"`
	Document JSONMap `gorm:"type:jsonb" json:"document"`
}

func (BuilderTemplate) TableName() string { return "builder_templates" }

// EventBuilder is the reusable event-playbook inventory, keyed by a
// human-derived slug.
type EventBuilder struct {
	ID      uint   `gorm:"primaryKey" json:"_id"`
	Name    string `json:"name"`
	Slug    string `gorm:"uniqueIndex" json:"slug"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
	Nodes   IDList `gorm:"type:jsonb" json:"nodes"`
	Edges   IDList `gorm:"type:jsonb" json:"edges"`
}

func (EventBuilder) TableName() string { return "builder_events" }

// IntegrationBuilder is the external-integration inventory, keyed by a
// unique slug and bound to a hostname.
type IntegrationBuilder struct {
	ID       uint    `gorm:"primaryKey" json:"_id"`
	Name     string  `json:"name"`
	Slug     string  `gorm:"uniqueIndex" json:"slug"`
	Type     string  `json:"type"`
	Hostname string  `json:"hostname"`
	Enabled  bool    `json:"enabled"`
	Nodes    IDList  `gorm:"type:jsonb" json:"nodes"`
	Edges    IDList  `gorm:"type:jsonb" json:"edges"`
	Image    *string `json:"image"`
}

func (IntegrationBuilder) TableName() string { return "builder_integrations" }
