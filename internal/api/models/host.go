package models

// ForwardConfig is the upstream the proxy forwards matched traffic to.
type ForwardConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// HostConfig carries the per-host behavior toggles.
type HostConfig struct {
	Strict bool `json:"strict"`
	Learn  bool `json:"learn"`
	HTTPS  bool `json:"https"`
}

// Host is a registered upstream API host. Hosts are never hard-deleted;
// they are mutated through config patches only.
type Host struct {
	ID         uint    `gorm:"primaryKey" json:"_id"`
	Hostname   string  `gorm:"index" json:"hostname"`
	OASSpecID  uint    `gorm:"column:oas_spec_id" json:"oas_spec"`
	FrwdConfig JSONMap `gorm:"type:jsonb" json:"frwd_config"`
	SeraConfig JSONMap `gorm:"type:jsonb" json:"sera_config"`
}

// ForwardHost returns the forwarding target hostname, if configured.
func (slf Host) ForwardHost() string {
	if slf.FrwdConfig == nil {
		return ""
	}
	if h, ok := slf.FrwdConfig["host"].(string); ok {
		return h
	}
	return ""
}
