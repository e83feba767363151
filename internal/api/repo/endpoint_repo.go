package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type EndpointRepository struct {
	Db *gorm.DB
}

func NewEndpointRepository() *EndpointRepository {
	return &EndpointRepository{Db: api.DB}
}

// FindByID retrieves an endpoint mapping with its host preloaded
func (slf *EndpointRepository) FindByID(id uint) (models.Endpoint, error) {
	var endpoint models.Endpoint
	err := slf.Db.Preload("Host").First(&endpoint, id).Error
	return endpoint, err
}

// FindAll retrieves mappings, limited to 100
func (slf *EndpointRepository) FindAll() ([]models.Endpoint, error) {
	var endpoints []models.Endpoint
	err := slf.Db.Preload("Host").Order("id").Limit(100).Find(&endpoints).Error
	return endpoints, err
}

// FindByHostPathMethod retrieves the mapping for a host+path+method
// tuple. Uniqueness is by convention only; the first match wins.
func (slf *EndpointRepository) FindByHostPathMethod(hostID uint, path string, method string) (models.Endpoint, error) {
	var endpoint models.Endpoint
	err := slf.Db.
		Where("host_id = ? AND endpoint = ? AND method = ?", hostID, path, method).
		Order("id").
		First(&endpoint).Error
	return endpoint, err
}

// Create persists a new mapping
func (slf *EndpointRepository) Create(endpoint *models.Endpoint) error {
	return slf.Db.Create(endpoint).Error
}

// AttachBuilder points a mapping at a builder inventory
func (slf *EndpointRepository) AttachBuilder(id uint, builderID uint) error {
	return slf.Db.Model(&models.Endpoint{}).
		Where("id = ?", id).
		Update("builder_id", builderID).Error
}
