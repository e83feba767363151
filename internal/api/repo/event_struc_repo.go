package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type EventStrucRepository struct {
	Db *gorm.DB
}

func NewEventStrucRepository() *EventStrucRepository {
	return &EventStrucRepository{Db: api.DB}
}

// Create persists a new event structure
func (slf *EventStrucRepository) Create(struc *models.EventStruc) error {
	return slf.Db.Create(struc).Error
}

// FindByID retrieves an event structure by ID
func (slf *EventStrucRepository) FindByID(id uint) (models.EventStruc, error) {
	var struc models.EventStruc
	err := slf.Db.First(&struc, id).Error
	return struc, err
}

// UpsertKey sets one key of the structure's data document
func (slf *EventStrucRepository) UpsertKey(id uint, key string, declaredType string) error {
	return slf.Db.Model(&models.EventStruc{}).
		Where("id = ?", id).
		Update("data", gorm.Expr(
			"COALESCE(data, '{}'::jsonb) || jsonb_build_object(?::text, to_jsonb(?::text))",
			key, declaredType,
		)).Error
}

// RemoveKey deletes one key from the structure's data document
func (slf *EventStrucRepository) RemoveKey(id uint, key string) error {
	return slf.Db.Model(&models.EventStruc{}).
		Where("id = ?", id).
		Update("data", gorm.Expr("COALESCE(data, '{}'::jsonb) - ?::text", key)).Error
}

// Delete removes an event structure
func (slf *EventStrucRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.EventStruc{}, id).Error
}
