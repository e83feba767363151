package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type OASRepository struct {
	Db *gorm.DB
}

func NewOASRepository() *OASRepository {
	return &OASRepository{Db: api.DB}
}

// FindByID retrieves a document by ID
func (slf *OASRepository) FindByID(id uint) (models.OAS, error) {
	var doc models.OAS
	err := slf.Db.First(&doc, id).Error
	return doc, err
}

// FindAll retrieves every stored document
func (slf *OASRepository) FindAll() ([]models.OAS, error) {
	var docs []models.OAS
	err := slf.Db.Order("id").Find(&docs).Error
	return docs, err
}

// FindServerCandidates retrieves documents with at least one servers[].url
// containing the given substring. Candidates for longest-match selection.
func (slf *OASRepository) FindServerCandidates(substring string) ([]models.OAS, error) {
	var docs []models.OAS
	err := slf.Db.
		Where(`EXISTS (
			SELECT 1 FROM jsonb_array_elements(spec->'servers') AS server
			WHERE position(? in server->>'url') > 0
		)`, substring).
		Order("id").
		Find(&docs).Error
	return docs, err
}

// Create persists a new document
func (slf *OASRepository) Create(doc *models.OAS) error {
	return slf.Db.Create(doc).Error
}
