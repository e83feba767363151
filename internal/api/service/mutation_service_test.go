package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	events []string
}

func (slf *fakeBroadcaster) Emit(event string, builderID string, payload any) error {
	slf.events = append(slf.events, event)
	return nil
}

type fakeSequencer struct {
	notifications int
}

func (slf *fakeSequencer) Notify(flavor repo.Flavor, builderID string) {
	slf.notifications++
}

func setupMutationTestDB(t *testing.T) {
	api.InitConfig("../../../.env.test")

	err := api.DB.AutoMigrate(
		&models.Node{},
		&models.Edge{},
		&models.Builder{},
		&models.EventStruc{},
		&models.Settings{},
	)
	require.NoError(t, err, "Failed to migrate builder tables")
}

func newMutationFixture(t *testing.T) (*MutationService, *fakeBroadcaster, *fakeSequencer, string, uint) {
	setupMutationTestDB(t)

	broadcaster := &fakeBroadcaster{}
	sequencer := &fakeSequencer{}
	service := NewMutationService(broadcaster, sequencer)

	builder := models.Builder{Nodes: models.IDList{}, Edges: models.IDList{}, Enabled: true}
	require.NoError(t, api.DB.Create(&builder).Error)

	return service, broadcaster, sequencer, strconv.FormatUint(uint64(builder.ID), 10), builder.ID
}

func cleanupBuilderGraph(t *testing.T, builderID uint) {
	api.DB.Unscoped().Where("1 = 1").Delete(&models.Edge{})
	api.DB.Unscoped().Where("1 = 1").Delete(&models.Node{})
	api.DB.Unscoped().Where("1 = 1").Delete(&models.EventStruc{})
	api.DB.Unscoped().Where("1 = 1").Delete(&models.Settings{})
	api.DB.Unscoped().Delete(&models.Builder{}, builderID)
}

// ============ Node Mutation Tests ============

func TestMutation_CreateNode(t *testing.T) {
	service, broadcaster, sequencer, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	node := models.Node{ClientID: "n-1", Type: models.NodeTypeFunction, Data: models.JSONMap{}}
	created, err := service.CreateNode(repo.FlavorBuilder, key, &node)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	inventory, err := repo.ForFlavor(repo.FlavorBuilder).Load(key)
	require.NoError(t, err)
	assert.Contains(t, inventory.Nodes, created.ID)

	assert.Equal(t, []string{"nodeCreated"}, broadcaster.events)
	assert.Equal(t, 1, sequencer.notifications)
}

func TestMutation_CreateNode_SendEventProvisionsStruc(t *testing.T) {
	service, _, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	node := models.Node{ClientID: "n-event", Type: models.NodeTypeSendEvent, Data: models.JSONMap{}}
	created, err := service.CreateNode(repo.FlavorBuilder, key, &node)
	require.NoError(t, err)

	strucID := created.StrucID()
	require.NotZero(t, strucID, "sendEventNode should own a fresh struc")

	struc, err := repo.NewEventStrucRepository().FindByID(strucID)
	require.NoError(t, err)
	assert.Equal(t, "builder-default", struc.Event)
	assert.Equal(t, "new Event", struc.Type)
}

func TestMutation_DeleteNode_CascadesStruc(t *testing.T) {
	service, broadcaster, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	node := models.Node{ClientID: "n-event", Type: models.NodeTypeSendEvent, Data: models.JSONMap{}}
	created, err := service.CreateNode(repo.FlavorBuilder, key, &node)
	require.NoError(t, err)
	strucID := created.StrucID()

	_, err = service.DeleteNode(repo.FlavorBuilder, key, created.ID)
	require.NoError(t, err)

	_, err = repo.NewEventStrucRepository().FindByID(strucID)
	assert.Error(t, err, "struc should be deleted with its node")

	inventory, err := repo.ForFlavor(repo.FlavorBuilder).Load(key)
	require.NoError(t, err)
	assert.NotContains(t, inventory.Nodes, created.ID)

	assert.Contains(t, broadcaster.events, "nodeDeleted")
}

// ============ Edge Mutation Tests ============

func TestMutation_CreateEdge_SweepsDuplicateTargetHandle(t *testing.T) {
	service, broadcaster, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	first := models.Edge{Source: "a", SourceHandle: "a.out", Target: "c", TargetHandle: "c.in"}
	_, err := service.CreateEdge(repo.FlavorBuilder, key, &first)
	require.NoError(t, err)

	second := models.Edge{Source: "b", SourceHandle: "b.out", Target: "c", TargetHandle: "c.in"}
	created, err := service.CreateEdge(repo.FlavorBuilder, key, &second)
	require.NoError(t, err)

	inventory, err := repo.ForFlavor(repo.FlavorBuilder).Load(key)
	require.NoError(t, err)
	assert.Contains(t, inventory.Edges, created.ID)
	assert.NotContains(t, inventory.Edges, first.ID, "replaced edge should leave the inventory")

	_, err = repo.NewGraphRepository().FindEdgeByID(first.ID)
	assert.Error(t, err, "replaced edge should be deleted")

	assert.Contains(t, broadcaster.events, "edgeDeleted")
}

func TestMutation_CreateEdge_FunctionEventHandleAllowsFanIn(t *testing.T) {
	service, _, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	target := models.Node{ClientID: "evt", Type: models.NodeTypeSendEvent, Data: models.JSONMap{}}
	_, err := service.CreateNode(repo.FlavorBuilder, key, &target)
	require.NoError(t, err)

	first := models.Edge{Source: "a", SourceHandle: "a.out.foo", Target: "evt", TargetHandle: models.HandleFunctionEvent}
	_, err = service.CreateEdge(repo.FlavorBuilder, key, &first)
	require.NoError(t, err)

	second := models.Edge{Source: "b", SourceHandle: "b.out.bar", Target: "evt", TargetHandle: models.HandleFunctionEvent}
	_, err = service.CreateEdge(repo.FlavorBuilder, key, &second)
	require.NoError(t, err)

	_, err = repo.NewGraphRepository().FindEdgeByID(first.ID)
	assert.NoError(t, err, "function-event handles accept multiple inbound edges")
}

func TestMutation_EdgeSyncsEventStrucKeys(t *testing.T) {
	service, _, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	target := models.Node{ClientID: "evt", Type: models.NodeTypeSendEvent, Data: models.JSONMap{}}
	created, err := service.CreateNode(repo.FlavorBuilder, key, &target)
	require.NoError(t, err)
	strucID := created.StrucID()

	edge := models.Edge{Source: "a", SourceHandle: "data.out.foo", Target: "evt", TargetHandle: models.HandleFunctionEvent}
	_, err = service.CreateEdge(repo.FlavorBuilder, key, &edge)
	require.NoError(t, err)

	strucRepo := repo.NewEventStrucRepository()
	struc, err := strucRepo.FindByID(strucID)
	require.NoError(t, err)
	assert.Equal(t, "string", struc.Data["foo"], "key is the handle segment after the last dot")

	_, err = service.DeleteEdge(repo.FlavorBuilder, key, edge.ID)
	require.NoError(t, err)

	struc, err = strucRepo.FindByID(strucID)
	require.NoError(t, err)
	assert.NotContains(t, struc.Data, "foo")
}

func TestMutation_UpdateEdge_PatchesEditorFieldsNotIdentity(t *testing.T) {
	service, broadcaster, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	edge := models.Edge{Source: "a", SourceHandle: "a.out", Target: "c", TargetHandle: "c.in"}
	created, err := service.CreateEdge(repo.FlavorBuilder, key, &edge)
	require.NoError(t, err)

	updated, err := service.UpdateEdge(repo.FlavorBuilder, key, created.ID, map[string]any{
		"animated":     true,
		"sourceHandle": "a.out.v2",
		"style":        map[string]any{"stroke": "#2bb74a"},
		"id":           "999",
		"_id":          999,
	})
	require.NoError(t, err)

	assert.True(t, updated.Animated)
	assert.Equal(t, "a.out.v2", updated.SourceHandle, "camelCase fields map onto their columns")
	assert.Equal(t, "#2bb74a", updated.Style["stroke"])
	assert.Equal(t, created.ID, updated.ID)
	assert.Contains(t, broadcaster.events, "edgeUpdated")
}

func TestMutation_ToastStartEdgeSyncsToastables(t *testing.T) {
	service, _, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	source := models.Node{ClientID: "src", Type: models.NodeTypeFunction, Data: models.JSONMap{"inputData": "hello"}}
	_, err := service.CreateNode(repo.FlavorBuilder, key, &source)
	require.NoError(t, err)

	toast := models.Node{ClientID: "toast", Type: models.NodeTypeToast, Data: models.JSONMap{}}
	_, err = service.CreateNode(repo.FlavorBuilder, key, &toast)
	require.NoError(t, err)

	edge := models.Edge{Source: "src", SourceHandle: "src.out", Target: "toast", TargetHandle: models.HandleStart}
	created, err := service.CreateEdge(repo.FlavorBuilder, key, &edge)
	require.NoError(t, err)

	settings, err := repo.NewSettingsRepository().Get()
	require.NoError(t, err)
	require.Len(t, settings.Toastables, 1, "start wire into a toast node registers a toastable")
	entry, ok := settings.Toastables[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "src", entry["source"])
	assert.Equal(t, "toast", entry["target"])
	assert.Equal(t, "hello", entry["data"], "payload is the source node's input data")

	_, err = service.DeleteEdge(repo.FlavorBuilder, key, created.ID)
	require.NoError(t, err)

	settings, err = repo.NewSettingsRepository().Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Toastables, "deleting the edge takes its toastable back out")
}

func TestMutation_NonToastTargetRegistersNoToastable(t *testing.T) {
	service, _, _, key, builderID := newMutationFixture(t)
	defer cleanupBuilderGraph(t, builderID)

	target := models.Node{ClientID: "fn", Type: models.NodeTypeFunction, Data: models.JSONMap{}}
	_, err := service.CreateNode(repo.FlavorBuilder, key, &target)
	require.NoError(t, err)

	edge := models.Edge{Source: "src", SourceHandle: "src.out", Target: "fn", TargetHandle: models.HandleStart}
	_, err = service.CreateEdge(repo.FlavorBuilder, key, &edge)
	require.NoError(t, err)

	settings, err := repo.NewSettingsRepository().Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Toastables)
}
