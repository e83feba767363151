package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Broadcaster fans a builder mutation out to every editor session
// attached to the same builder.
type Broadcaster interface {
	Emit(event string, builderID string, payload any) error
}

// SequencerNotifier tells the downstream sequencer that a builder's
// graph changed and should be re-read.
type SequencerNotifier interface {
	Notify(flavor repo.Flavor, builderID string)
}

// MutationService coordinates node and edge mutations: persistence,
// inventory bookkeeping, event-struc synchronization, toastable
// registration, broadcast and sequencer notification. Operations are
// not transactional; each side effect is attempted and failures past
// the primary write are logged rather than unwound.
type MutationService struct {
	graphRepo    *repo.GraphRepository
	strucRepo    *repo.EventStrucRepository
	settingsRepo *repo.SettingsRepository
	broadcaster  Broadcaster
	sequencer    SequencerNotifier
	logger       zerolog.Logger
}

func NewMutationService(broadcaster Broadcaster, sequencer SequencerNotifier) *MutationService {
	return &MutationService{
		graphRepo:    repo.NewGraphRepository(),
		strucRepo:    repo.NewEventStrucRepository(),
		settingsRepo: repo.NewSettingsRepository(),
		broadcaster:  broadcaster,
		sequencer:    sequencer,
		logger:       api.Logger,
	}
}

// CreateNode persists a node, registers it in the builder's inventory
// and announces it. Send-event nodes get a fresh event struc wired in
// before the save; integration nodes get their host placeholder
// replaced with the integration's hostname.
func (slf *MutationService) CreateNode(flavor repo.Flavor, builderID string, node *models.Node) (*models.Node, error) {
	store := repo.ForFlavor(flavor)

	if node.Type == models.NodeTypeSendEvent {
		struc := models.EventStruc{
			Event:       "builder-default",
			Type:        "new Event",
			Description: "new event",
			Data:        models.JSONMap{},
		}
		if err := slf.strucRepo.Create(&struc); err != nil {
			return nil, err
		}
		if node.Data == nil {
			node.Data = models.JSONMap{}
		}
		node.Data["struc_id"] = struc.ID
	}

	if flavor == repo.FlavorIntegration {
		if err := slf.replaceHostString(store, builderID, node); err != nil {
			return nil, err
		}
	}

	if err := slf.graphRepo.CreateNode(node); err != nil {
		return nil, err
	}
	if err := store.PushNode(builderID, node.ID); err != nil {
		return nil, err
	}

	slf.broadcast("nodeCreated", builderID, node)
	slf.sequencer.Notify(flavor, builderID)
	return node, nil
}

// DeleteNode removes a node from storage and from the builder's
// inventory. A send-event node takes its event struc with it.
func (slf *MutationService) DeleteNode(flavor repo.Flavor, builderID string, nodeID uint) (*models.Node, error) {
	node, err := slf.graphRepo.DeleteNode(nodeID)
	if err != nil {
		return nil, err
	}

	if node.Type == models.NodeTypeSendEvent {
		if strucID := node.StrucID(); strucID != 0 {
			if err := slf.strucRepo.Delete(strucID); err != nil {
				slf.logger.Error().Err(err).Uint("struc", strucID).Msg("Error deleting event struc for removed node")
			}
		}
	}

	if err := repo.ForFlavor(flavor).PullNode(builderID, node.ID); err != nil {
		slf.logger.Error().Err(err).Uint("node", node.ID).Msg("Error detaching node from inventory")
	}

	slf.broadcast("nodeDeleted", builderID, node)
	slf.sequencer.Notify(flavor, builderID)
	return &node, nil
}

// CreateEdge persists an edge and runs the wiring side effects: event
// struc key registration for function-event connections, the target
// handle uniqueness sweep, and toastable registration for toast wires.
func (slf *MutationService) CreateEdge(flavor repo.Flavor, builderID string, edge *models.Edge) (*models.Edge, error) {
	store := repo.ForFlavor(flavor)

	if err := slf.graphRepo.CreateEdge(edge); err != nil {
		return nil, err
	}

	if edge.TargetHandle == models.HandleFunctionEvent {
		slf.registerEventKey(edge)
	}

	if !models.ExemptFromUniqueness(edge.TargetHandle) {
		slf.sweepTargetHandle(store, builderID, edge)
	}

	if err := store.PushEdge(builderID, edge.ID); err != nil {
		return nil, err
	}

	if edge.TargetHandle == models.HandleStart {
		slf.registerToastable(edge)
	}

	slf.broadcast("edgeCreated", builderID, edge)
	slf.sequencer.Notify(flavor, builderID)
	return edge, nil
}

// edgeColumns maps the editor's edge field names onto their columns.
// Identity fields are absent on purpose; patches cannot move an edge.
var edgeColumns = map[string]string{
	"source":       "source",
	"sourceHandle": "source_handle",
	"target":       "target",
	"targetHandle": "target_handle",
	"animated":     "animated",
	"style":        "style",
	"data":         "data",
}

// UpdateEdge applies a partial editor-shaped patch to an edge. Unknown
// and identity fields are dropped.
func (slf *MutationService) UpdateEdge(flavor repo.Flavor, builderID string, edgeID uint, patch map[string]any) (*models.Edge, error) {
	mapped := map[string]any{}
	for key, value := range patch {
		column, ok := edgeColumns[key]
		if !ok {
			continue
		}
		if m, ok := value.(map[string]any); ok {
			mapped[column] = models.JSONMap(m)
		} else {
			mapped[column] = value
		}
	}

	if len(mapped) > 0 {
		if err := slf.graphRepo.UpdateEdge(edgeID, mapped); err != nil {
			return nil, err
		}
	}
	edge, err := slf.graphRepo.FindEdgeByID(edgeID)
	if err != nil {
		return nil, err
	}

	slf.broadcast("edgeUpdated", builderID, &edge)
	slf.sequencer.Notify(flavor, builderID)
	return &edge, nil
}

// DeleteEdge mirrors CreateEdge: the struc key, inventory reference and
// toastable entry the creation added are taken back out.
func (slf *MutationService) DeleteEdge(flavor repo.Flavor, builderID string, edgeID uint) (*models.Edge, error) {
	edge, err := slf.graphRepo.DeleteEdge(edgeID)
	if err != nil {
		return nil, err
	}

	if edge.TargetHandle == models.HandleFunctionEvent {
		slf.removeEventKey(&edge)
	}

	if err := repo.ForFlavor(flavor).PullEdge(builderID, edge.ID); err != nil {
		slf.logger.Error().Err(err).Uint("edge", edge.ID).Msg("Error detaching edge from inventory")
	}

	if edge.TargetHandle == models.HandleStart {
		if err := slf.settingsRepo.RemoveToastable(edge.Source, edge.Target); err != nil {
			slf.logger.Error().Err(err).Msg("Error removing toastable entry")
		}
	}

	slf.broadcast("edgeDeleted", builderID, &edge)
	slf.sequencer.Notify(flavor, builderID)
	return &edge, nil
}

// sweepTargetHandle deletes every other edge already attached to the
// same (target, targetHandle) pair, so handles stay single-wired.
func (slf *MutationService) sweepTargetHandle(store repo.InventoryStore, builderID string, edge *models.Edge) {
	duplicates, err := slf.graphRepo.FindEdgesByTargetHandle(edge.Target, edge.TargetHandle, edge.ID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error scanning for duplicate edges")
		return
	}
	for _, duplicate := range duplicates {
		slf.broadcast("edgeDeleted", builderID, &duplicate)
		if _, err := slf.graphRepo.DeleteEdge(duplicate.ID); err != nil {
			slf.logger.Error().Err(err).Uint("edge", duplicate.ID).Msg("Error deleting duplicate edge")
			continue
		}
		if err := store.PullEdge(builderID, duplicate.ID); err != nil {
			slf.logger.Error().Err(err).Uint("edge", duplicate.ID).Msg("Error detaching duplicate edge from inventory")
		}
	}
}

// registerEventKey records the wired field on the target node's event
// struc. The key is the last segment of the source handle; declared
// type is always string until struc editing grows richer typing.
func (slf *MutationService) registerEventKey(edge *models.Edge) {
	node, err := slf.graphRepo.FindNodeByClientID(edge.Target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Warn().Str("target", edge.Target).Msg("Function-event edge targets an unknown node")
			return
		}
		slf.logger.Error().Err(err).Msg("Error loading function-event target node")
		return
	}
	strucID := node.StrucID()
	if strucID == 0 {
		slf.logger.Warn().Str("target", edge.Target).Msg("Function-event target node has no struc")
		return
	}
	if err := slf.strucRepo.UpsertKey(strucID, keyAfterLastDot(edge.SourceHandle), "string"); err != nil {
		slf.logger.Error().Err(err).Uint("struc", strucID).Msg("Error registering event struc key")
	}
}

func (slf *MutationService) removeEventKey(edge *models.Edge) {
	node, err := slf.graphRepo.FindNodeByClientID(edge.Target)
	if err != nil {
		return
	}
	strucID := node.StrucID()
	if strucID == 0 {
		return
	}
	if err := slf.strucRepo.RemoveKey(strucID, keyAfterLastDot(edge.SourceHandle)); err != nil {
		slf.logger.Error().Err(err).Uint("struc", strucID).Msg("Error removing event struc key")
	}
}

// registerToastable records a start wire into a toast node in the
// global settings, carrying the source node's input data as the toast
// payload.
func (slf *MutationService) registerToastable(edge *models.Edge) {
	target, err := slf.graphRepo.FindNodeByClientID(edge.Target)
	if err != nil || target.Type != models.NodeTypeToast {
		return
	}
	source, err := slf.graphRepo.FindNodeByClientID(edge.Source)
	if err != nil {
		slf.logger.Error().Err(err).Str("source", edge.Source).Msg("Error loading toast source node")
		return
	}
	var data any
	if source.Data != nil {
		data = source.Data["inputData"]
	}
	entry := map[string]any{
		"source": edge.Source,
		"target": edge.Target,
		"data":   data,
	}
	if err := slf.settingsRepo.AppendToastable(entry); err != nil {
		slf.logger.Error().Err(err).Msg("Error registering toastable entry")
	}
}

// replaceHostString substitutes the integration's hostname into any
// node field that carries the replace-host-string marker.
func (slf *MutationService) replaceHostString(store repo.InventoryStore, builderID string, node *models.Node) error {
	inventory, err := store.Load(builderID)
	if err != nil {
		return err
	}
	if inventory.Hostname == "" || node.Data == nil {
		return nil
	}
	for key, value := range node.Data {
		if text, ok := value.(string); ok && strings.Contains(text, "replace-host-string") {
			node.Data[key] = strings.ReplaceAll(text, "replace-host-string", inventory.Hostname)
		}
	}
	return nil
}

func (slf *MutationService) broadcast(event string, builderID string, payload any) {
	if err := slf.broadcaster.Emit(event, builderID, payload); err != nil {
		slf.logger.Error().Err(err).Str("event", event).Str("builder", builderID).Msg("Error broadcasting builder mutation")
	}
}

func keyAfterLastDot(handle string) string {
	if i := strings.LastIndex(handle, "."); i >= 0 {
		return handle[i+1:]
	}
	return handle
}
