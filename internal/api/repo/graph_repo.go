package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

// GraphRepository is the flat node/edge store shared by all graph
// flavors. Records are independently addressable; graph membership
// lives in the inventories alone.
type GraphRepository struct {
	Db *gorm.DB
}

func NewGraphRepository() *GraphRepository {
	return &GraphRepository{Db: api.DB}
}

// CreateNode persists a node
func (slf *GraphRepository) CreateNode(node *models.Node) error {
	return slf.Db.Create(node).Error
}

// SaveNode writes back a modified node
func (slf *GraphRepository) SaveNode(node *models.Node) error {
	return slf.Db.Save(node).Error
}

// FindNodeByID retrieves a node by storage id
func (slf *GraphRepository) FindNodeByID(id uint) (models.Node, error) {
	var node models.Node
	err := slf.Db.First(&node, id).Error
	return node, err
}

// FindNodeByClientID retrieves a node by its editor-assigned id
func (slf *GraphRepository) FindNodeByClientID(clientID string) (models.Node, error) {
	var node models.Node
	err := slf.Db.Where("client_id = ?", clientID).Order("id").First(&node).Error
	return node, err
}

// FindNodesByIDs bulk-fetches the nodes referenced by an inventory
func (slf *GraphRepository) FindNodesByIDs(ids models.IDList) ([]models.Node, error) {
	if len(ids) == 0 {
		return []models.Node{}, nil
	}
	var nodes []models.Node
	err := slf.Db.Where("id IN ?", []uint(ids)).Order("id").Find(&nodes).Error
	return nodes, err
}

// DeleteNode removes a node by storage id. Returns gorm.ErrRecordNotFound
// when nothing was deleted.
func (slf *GraphRepository) DeleteNode(id uint) (models.Node, error) {
	node, err := slf.FindNodeByID(id)
	if err != nil {
		return node, err
	}
	err = slf.Db.Delete(&models.Node{}, id).Error
	return node, err
}

// CreateEdge persists an edge
func (slf *GraphRepository) CreateEdge(edge *models.Edge) error {
	return slf.Db.Create(edge).Error
}

// FindEdgeByID retrieves an edge by storage id
func (slf *GraphRepository) FindEdgeByID(id uint) (models.Edge, error) {
	var edge models.Edge
	err := slf.Db.First(&edge, id).Error
	return edge, err
}

// FindEdgesByIDs bulk-fetches the edges referenced by an inventory
func (slf *GraphRepository) FindEdgesByIDs(ids models.IDList) ([]models.Edge, error) {
	if len(ids) == 0 {
		return []models.Edge{}, nil
	}
	var edges []models.Edge
	err := slf.Db.Where("id IN ?", []uint(ids)).Order("id").Find(&edges).Error
	return edges, err
}

// FindEdgesByTargetHandle retrieves every edge terminating on the given
// (target, targetHandle) pair, except the excluded storage id.
func (slf *GraphRepository) FindEdgesByTargetHandle(target string, targetHandle string, excludeID uint) ([]models.Edge, error) {
	var edges []models.Edge
	err := slf.Db.
		Where("target = ? AND target_handle = ? AND id <> ?", target, targetHandle, excludeID).
		Order("id").
		Find(&edges).Error
	return edges, err
}

// UpdateEdge applies a field patch to an edge
func (slf *GraphRepository) UpdateEdge(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Edge{}).Where("id = ?", id).Updates(patch).Error
}

// DeleteEdge removes an edge by storage id and returns the deleted record
func (slf *GraphRepository) DeleteEdge(id uint) (models.Edge, error) {
	edge, err := slf.FindEdgeByID(id)
	if err != nil {
		return edge, err
	}
	err = slf.Db.Delete(&models.Edge{}, id).Error
	return edge, err
}
