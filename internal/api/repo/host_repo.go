package repo

import (
	"api"
	"api/internal/api/models"
	"encoding/json"

	"gorm.io/gorm"
)

type HostRepository struct {
	Db *gorm.DB
}

func NewHostRepository() *HostRepository {
	return &HostRepository{Db: api.DB}
}

// FindByID retrieves a host by ID
func (slf *HostRepository) FindByID(id uint) (models.Host, error) {
	var host models.Host
	err := slf.Db.First(&host, id).Error
	return host, err
}

// FindByHostname retrieves the first host with the exact hostname
func (slf *HostRepository) FindByHostname(hostname string) (models.Host, error) {
	var host models.Host
	err := slf.Db.Where("hostname = ?", hostname).First(&host).Error
	return host, err
}

// FindContaining retrieves every host whose hostname contains the given
// substring. Candidates for longest-match selection.
func (slf *HostRepository) FindContaining(substring string) ([]models.Host, error) {
	var hosts []models.Host
	err := slf.Db.
		Where("position(? in hostname) > 0", substring).
		Order("id").
		Find(&hosts).Error
	return hosts, err
}

// FindAll retrieves hosts, limited to 100
func (slf *HostRepository) FindAll() ([]models.Host, error) {
	var hosts []models.Host
	err := slf.Db.Order("id").Limit(100).Find(&hosts).Error
	return hosts, err
}

// Create persists a new host
func (slf *HostRepository) Create(host *models.Host) error {
	return slf.Db.Create(host).Error
}

// PatchConfig sets one sera_config field on a host. The value is
// serialized to JSON first, so booleans and numbers keep their type.
func (slf *HostRepository) PatchConfig(id uint, field string, value any) (models.Host, error) {
	var host models.Host
	raw, err := json.Marshal(value)
	if err != nil {
		return host, err
	}
	err = slf.Db.Model(&models.Host{}).
		Where("id = ?", id).
		Update("sera_config", gorm.Expr(
			"COALESCE(sera_config, '{}'::jsonb) || jsonb_build_object(?::text, ?::jsonb)",
			field, string(raw),
		)).Error
	if err != nil {
		return host, err
	}
	err = slf.Db.First(&host, id).Error
	return host, err
}
