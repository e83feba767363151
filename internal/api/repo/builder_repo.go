package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

// BuilderRepository covers the inventory documents themselves; list
// mutations go through the flavored InventoryStore instead.
type BuilderRepository struct {
	Db *gorm.DB
}

func NewBuilderRepository() *BuilderRepository {
	return &BuilderRepository{Db: api.DB}
}

// CreateBuilder persists an endpoint-flavored inventory
func (slf *BuilderRepository) CreateBuilder(builder *models.Builder) error {
	return slf.Db.Create(builder).Error
}

// FindTemplate retrieves the endpoint-builder seed template
func (slf *BuilderRepository) FindTemplate() (models.BuilderTemplate, error) {
	var template models.BuilderTemplate
	err := slf.Db.Where("template = ?", true).Order("id").First(&template).Error
	return template, err
}

// CreateEventBuilder persists a playbook inventory
func (slf *BuilderRepository) CreateEventBuilder(playbook *models.EventBuilder) error {
	return slf.Db.Create(playbook).Error
}

// FindEventBuilders retrieves every playbook inventory
func (slf *BuilderRepository) FindEventBuilders() ([]models.EventBuilder, error) {
	var playbooks []models.EventBuilder
	err := slf.Db.Order("id").Find(&playbooks).Error
	return playbooks, err
}

// EventSlugTaken reports whether a playbook slug is already in use
func (slf *BuilderRepository) EventSlugTaken(slug string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.EventBuilder{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CreateIntegration persists an integration inventory
func (slf *BuilderRepository) CreateIntegration(integration *models.IntegrationBuilder) error {
	return slf.Db.Create(integration).Error
}

// FindIntegrations retrieves every integration inventory
func (slf *BuilderRepository) FindIntegrations() ([]models.IntegrationBuilder, error) {
	var integrations []models.IntegrationBuilder
	err := slf.Db.Order("id").Find(&integrations).Error
	return integrations, err
}

// IntegrationSlugTaken reports whether an integration slug is already in use
func (slf *BuilderRepository) IntegrationSlugTaken(slug string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.IntegrationBuilder{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
