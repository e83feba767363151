package repo

import (
	"api"
	"api/internal/api/models"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

// Flavor selects which of the three inventory collections a mutation or
// materialization addresses. It is resolved once at the handler boundary;
// nothing downstream switches on it again.
type Flavor string

const (
	FlavorBuilder     Flavor = "builder"
	FlavorEvent       Flavor = "event"
	FlavorIntegration Flavor = "integration"
)

var ErrUnknownFlavor = errors.New("unknown builder flavor")

// ParseFlavor maps the ?type= query value onto a Flavor. An empty value
// defaults to the endpoint flavor, matching the editor's behavior.
func ParseFlavor(raw string) (Flavor, error) {
	switch raw {
	case "", string(FlavorBuilder):
		return FlavorBuilder, nil
	case string(FlavorEvent):
		return FlavorEvent, nil
	case string(FlavorIntegration):
		return FlavorIntegration, nil
	default:
		return "", ErrUnknownFlavor
	}
}

// Inventory is the flavor-independent view of one builder document.
type Inventory struct {
	Key      string
	Nodes    models.IDList
	Edges    models.IDList
	Enabled  bool
	Hostname string
}

// InventoryStore is the closed set of per-flavor operations: load plus
// atomic reference push/pull on the node and edge lists.
type InventoryStore interface {
	Flavor() Flavor
	Load(key string) (*Inventory, error)
	PushNode(key string, nodeID uint) error
	PullNode(key string, nodeID uint) error
	PushEdge(key string, edgeID uint) error
	PullEdge(key string, edgeID uint) error
}

// ForFlavor returns the store implementation for a flavor.
func ForFlavor(flavor Flavor) InventoryStore {
	switch flavor {
	case FlavorEvent:
		return &eventInventoryStore{Db: api.DB}
	case FlavorIntegration:
		return &integrationInventoryStore{Db: api.DB}
	default:
		return &builderInventoryStore{Db: api.DB}
	}
}

// pushRef appends one id to a jsonb reference list in a single
// statement, so concurrent pushes cannot lose entries.
func pushRef(db *gorm.DB, table string, column string, keyColumn string, key any, id uint) error {
	return db.Exec(
		"UPDATE "+table+" SET "+column+" = COALESCE("+column+", '[]'::jsonb) || to_jsonb(?::bigint) WHERE "+keyColumn+" = ?",
		id, key,
	).Error
}

// pullRef removes every occurrence of one id from a jsonb reference
// list, rebuilt in a single statement.
func pullRef(db *gorm.DB, table string, column string, keyColumn string, key any, id uint) error {
	return db.Exec(
		"UPDATE "+table+" SET "+column+" = COALESCE((SELECT jsonb_agg(el) FROM jsonb_array_elements("+column+") AS el WHERE el <> to_jsonb(?::bigint)), '[]'::jsonb) WHERE "+keyColumn+" = ?",
		id, key,
	).Error
}

type builderInventoryStore struct {
	Db *gorm.DB
}

func (slf *builderInventoryStore) Flavor() Flavor { return FlavorBuilder }

func (slf *builderInventoryStore) Load(key string) (*Inventory, error) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var builder models.Builder
	if err := slf.Db.First(&builder, uint(id)).Error; err != nil {
		return nil, err
	}
	return &Inventory{
		Key:     key,
		Nodes:   builder.Nodes,
		Edges:   builder.Edges,
		Enabled: builder.Enabled,
	}, nil
}

// numericKey converts the string key to the bigint primary key the
// builder_inventory table is addressed by.
func numericKey(key string) uint64 {
	id, _ := strconv.ParseUint(key, 10, 64)
	return id
}

func (slf *builderInventoryStore) PushNode(key string, nodeID uint) error {
	return pushRef(slf.Db, "builder_inventory", "nodes", "id", numericKey(key), nodeID)
}

func (slf *builderInventoryStore) PullNode(key string, nodeID uint) error {
	return pullRef(slf.Db, "builder_inventory", "nodes", "id", numericKey(key), nodeID)
}

func (slf *builderInventoryStore) PushEdge(key string, edgeID uint) error {
	return pushRef(slf.Db, "builder_inventory", "edges", "id", numericKey(key), edgeID)
}

func (slf *builderInventoryStore) PullEdge(key string, edgeID uint) error {
	return pullRef(slf.Db, "builder_inventory", "edges", "id", numericKey(key), edgeID)
}

type eventInventoryStore struct {
	Db *gorm.DB
}

func (slf *eventInventoryStore) Flavor() Flavor { return FlavorEvent }

func (slf *eventInventoryStore) Load(key string) (*Inventory, error) {
	var playbook models.EventBuilder
	if err := slf.Db.Where("slug = ?", key).First(&playbook).Error; err != nil {
		return nil, err
	}
	return &Inventory{
		Key:     key,
		Nodes:   playbook.Nodes,
		Edges:   playbook.Edges,
		Enabled: playbook.Enabled,
	}, nil
}

func (slf *eventInventoryStore) PushNode(key string, nodeID uint) error {
	return pushRef(slf.Db, "builder_events", "nodes", "slug", key, nodeID)
}

func (slf *eventInventoryStore) PullNode(key string, nodeID uint) error {
	return pullRef(slf.Db, "builder_events", "nodes", "slug", key, nodeID)
}

func (slf *eventInventoryStore) PushEdge(key string, edgeID uint) error {
	return pushRef(slf.Db, "builder_events", "edges", "slug", key, edgeID)
}

func (slf *eventInventoryStore) PullEdge(key string, edgeID uint) error {
	return pullRef(slf.Db, "builder_events", "edges", "slug", key, edgeID)
}

type integrationInventoryStore struct {
	Db *gorm.DB
}

func (slf *integrationInventoryStore) Flavor() Flavor { return FlavorIntegration }

func (slf *integrationInventoryStore) Load(key string) (*Inventory, error) {
	var integration models.IntegrationBuilder
	if err := slf.Db.Where("slug = ?", key).First(&integration).Error; err != nil {
		return nil, err
	}
	return &Inventory{
		Key:      key,
		Nodes:    integration.Nodes,
		Edges:    integration.Edges,
		Enabled:  integration.Enabled,
		Hostname: integration.Hostname,
	}, nil
}

func (slf *integrationInventoryStore) PushNode(key string, nodeID uint) error {
	return pushRef(slf.Db, "builder_integrations", "nodes", "slug", key, nodeID)
}

func (slf *integrationInventoryStore) PullNode(key string, nodeID uint) error {
	return pullRef(slf.Db, "builder_integrations", "nodes", "slug", key, nodeID)
}

func (slf *integrationInventoryStore) PushEdge(key string, edgeID uint) error {
	return pushRef(slf.Db, "builder_integrations", "edges", "slug", key, edgeID)
}

func (slf *integrationInventoryStore) PullEdge(key string, edgeID uint) error {
	return pullRef(slf.Db, "builder_integrations", "edges", "slug", key, edgeID)
}
