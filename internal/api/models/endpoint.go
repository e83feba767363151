package models

// Endpoint maps a (host, path, method) tuple to its builder inventory.
// Uniqueness per tuple is by convention, not a database constraint;
// lookups take the first match.
type Endpoint struct {
	ID        uint    `gorm:"primaryKey" json:"_id"`
	HostID    uint    `gorm:"index" json:"host_id"`
	Host      Host    `json:"-"`
	BuilderID *uint   `json:"builder_id"`
	Endpoint  string  `json:"endpoint"`
	Method    string  `json:"method"`
	Config    JSONMap `gorm:"type:jsonb;column:sera_config" json:"sera_config"`
}
