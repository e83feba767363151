package repo

import (
	"api"
	"api/internal/api/models"
	"encoding/json"

	"gorm.io/gorm"
)

// SettingsRepository mutates the global settings singleton. The
// toastables list is grown and shrunk with single-statement jsonb
// updates so concurrent edge mutations cannot clobber each other.
type SettingsRepository struct {
	Db *gorm.DB
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{Db: api.DB}
}

// Get retrieves the singleton, creating it on first use.
func (slf *SettingsRepository) Get() (models.Settings, error) {
	var settings models.Settings
	err := slf.Db.Order("id").First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.Settings{Toastables: models.JSONArray{}}
		err = slf.Db.Create(&settings).Error
	}
	return settings, err
}

// AppendToastable appends one entry to the toastables list.
func (slf *SettingsRepository) AppendToastable(entry map[string]any) error {
	settings, err := slf.Get()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return slf.Db.Model(&models.Settings{}).
		Where("id = ?", settings.ID).
		Update("toastables", gorm.Expr(
			"COALESCE(toastables, '[]'::jsonb) || ?::jsonb", string(raw),
		)).Error
}

// RemoveToastable drops every entry matching the source/target pair of
// a deleted toast-start edge.
func (slf *SettingsRepository) RemoveToastable(source string, target string) error {
	settings, err := slf.Get()
	if err != nil {
		return err
	}
	return slf.Db.Model(&models.Settings{}).
		Where("id = ?", settings.ID).
		Update("toastables", gorm.Expr(
			`COALESCE((
				SELECT jsonb_agg(el) FROM jsonb_array_elements(toastables) AS el
				WHERE NOT (el->>'source' = ?::text AND el->>'target' = ?::text)
			), '[]'::jsonb)`,
			source, target,
		)).Error
}
