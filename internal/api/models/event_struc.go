package models

import "time"

// EventStruc is the free-form key/value document owned 1:1 by a
// sendEventNode. Keys are added and removed in lock-step with edges
// terminating on the node's function-event handle.
type EventStruc struct {
	ID          uint    `gorm:"primaryKey" json:"_id"`
	Event       string  `json:"event"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Data        JSONMap `gorm:"type:jsonb" json:"data"`
}

func (EventStruc) TableName() string { return "event_strucs" }

// SeraEvent is one emitted event record.
type SeraEvent struct {
	ID    uint    `gorm:"primaryKey" json:"_id"`
	Event string  `json:"event"`
	Type  string  `json:"type"`
	Data  JSONMap `gorm:"type:jsonb" json:"data"`
	TS    int64   `gorm:"autoCreateTime:milli" json:"ts"`
}

func (SeraEvent) TableName() string { return "sera_events" }

// Timestamp returns the event time.
func (slf SeraEvent) Timestamp() time.Time {
	return time.UnixMilli(slf.TS)
}
