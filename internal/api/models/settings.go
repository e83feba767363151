package models

// Settings is the global settings singleton. Toastables entries are
// appended and removed in lock-step with toast-start edges.
type Settings struct {
	ID         uint      `gorm:"primaryKey" json:"_id"`
	Toastables JSONArray `gorm:"type:jsonb" json:"toastables"`
}

func (Settings) TableName() string { return "sera_settings" }
