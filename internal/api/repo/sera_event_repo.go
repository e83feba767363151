package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type SeraEventRepository struct {
	Db *gorm.DB
}

func NewSeraEventRepository() *SeraEventRepository {
	return &SeraEventRepository{Db: api.DB}
}

// Create persists an event record
func (slf *SeraEventRepository) Create(event *models.SeraEvent) error {
	return slf.Db.Create(event).Error
}

// FindByID retrieves one event record
func (slf *SeraEventRepository) FindByID(id uint) (models.SeraEvent, error) {
	var event models.SeraEvent
	err := slf.Db.First(&event, id).Error
	return event, err
}

// FindAll retrieves event records, newest first
func (slf *SeraEventRepository) FindAll() ([]models.SeraEvent, error) {
	var events []models.SeraEvent
	err := slf.Db.Order("ts desc").Find(&events).Error
	return events, err
}
