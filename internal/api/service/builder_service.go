package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/internal/oas"
	"api/pkg"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// BuilderGraph is a materialized flow graph ready for the editor.
type BuilderGraph struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// BuilderService materializes builder inventories into live graphs and
// provisions new endpoint builders from the seed template.
type BuilderService struct {
	graphRepo     *repo.GraphRepository
	builderRepo   *repo.BuilderRepository
	hostRepo      *repo.HostRepository
	oasRepo       *repo.OASRepository
	schemaService *SchemaService
	logger        zerolog.Logger
}

func NewBuilderService() *BuilderService {
	return &BuilderService{
		graphRepo:     repo.NewGraphRepository(),
		builderRepo:   repo.NewBuilderRepository(),
		hostRepo:      repo.NewHostRepository(),
		oasRepo:       repo.NewOASRepository(),
		schemaService: NewSchemaService(),
		logger:        api.Logger,
	}
}

// GetBuilder loads an inventory by flavor and key, bulk-fetches its
// nodes and edges, and injects the given parameter trees into header
// nodes. The injection happens on the returned value only; nothing is
// written back.
func (slf *BuilderService) GetBuilder(flavor repo.Flavor, key string, request oas.Parameters, response oas.Parameters) (*BuilderGraph, error) {
	store := repo.ForFlavor(flavor)

	inventory, err := store.Load(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Debug().Str("builder", key).Str("flavor", string(flavor)).Msg("Builder inventory not found")
			return nil, &ResolutionError{Code: CodeNoBuilder}
		}
		return nil, err
	}

	nodes, err := slf.graphRepo.FindNodesByIDs(inventory.Nodes)
	if err != nil {
		return nil, err
	}
	edges, err := slf.graphRepo.FindEdgesByIDs(inventory.Edges)
	if err != nil {
		return nil, err
	}

	InjectSchema(nodes, request, response)

	return &BuilderGraph{Nodes: nodes, Edges: edges}, nil
}

// InjectSchema populates header nodes with the endpoint's parameter
// trees, selected by their headerType code. Injecting the same trees
// twice yields identical payloads.
func InjectSchema(nodes []models.Node, request oas.Parameters, response oas.Parameters) {
	for i := range nodes {
		node := &nodes[i]
		if node.Data == nil {
			continue
		}
		switch node.HeaderType() {
		case models.HeaderRequestOut:
			node.Data["out"] = request
		case models.HeaderRequestIn:
			node.Data["in"] = request
		case models.HeaderResponseOut:
			node.Data["out"] = response
		case models.HeaderResponseIn:
			stripped := response.DeepCopy()
			delete(stripped, "Status Codes")
			node.Data["in"] = stripped
		}
	}
}

// ProvisionEndpointBuilder creates a new endpoint builder from the seed
// template: placeholder substitution, one param edge per extracted
// request/response field, then nodes, edges and the inventory persisted
// in that order.
func (slf *BuilderService) ProvisionEndpointBuilder(hostID uint, hostname string, path string, method string) (*models.Builder, error) {
	host, err := slf.hostRepo.FindByID(hostID)
	if err != nil {
		return nil, err
	}
	doc, err := slf.oasRepo.FindByID(host.OASSpecID)
	if err != nil {
		return nil, err
	}

	truepath := strings.Replace(hostname+path, host.Hostname, "", 1)
	oasPath := truepath
	if oasPath == "" {
		oasPath = "/"
	}
	schema := slf.schemaService.Extract(doc, oasPath, method)

	template, err := slf.builderRepo.FindTemplate()
	if err != nil {
		return nil, fmt.Errorf("builder template missing: %w", err)
	}

	gens := make([]string, 6)
	for i := range gens {
		gens[i] = pkg.GenerateRandomString(12)
	}

	raw, err := json.Marshal(template.Document)
	if err != nil {
		return nil, err
	}
	edited := string(raw)
	edited = strings.ReplaceAll(edited, "{{host}}", host.Hostname)
	edited = strings.ReplaceAll(edited, "{{method}}", method)
	edited = strings.ReplaceAll(edited, "{{path}}", truepath)
	for i, gen := range gens {
		edited = strings.ReplaceAll(edited, fmt.Sprintf("{{gen-%d}}", i+1), gen)
	}

	var finalized struct {
		Nodes []models.JSONMap `json:"nodes"`
		Edges []models.JSONMap `json:"edges"`
	}
	if err := json.Unmarshal([]byte(edited), &finalized); err != nil {
		return nil, err
	}

	// Fan the extracted fields out as param edges between the header
	// node pairs minted above: gen1->gen2 for inputs, gen3->gen4 for
	// outputs.
	for _, bucket := range []struct {
		params         oas.Parameters
		source, target string
		response       bool
	}{
		{schema.Request, gens[0], gens[1], false},
		{schema.Response, gens[2], gens[3], true},
	} {
		for _, field := range sortedBuckets(bucket.params) {
			for _, f := range bucket.params[field] {
				name, _ := f["name"].(string)
				schemaType := fieldType(f)

				handle := field + "." + name
				targetHandle := handle
				animated := false
				if bucket.response && schemaType == "null" {
					targetHandle = models.HandleStart
					animated = true
				}

				finalized.Edges = append(finalized.Edges, models.JSONMap{
					"source":       bucket.source,
					"sourceHandle": handle,
					"target":       bucket.target,
					"targetHandle": targetHandle,
					"id":           fmt.Sprintf("%s-%s-%s-%s", bucket.source, bucket.target, name, pkg.GenerateRandomString(12)),
					"animated":     animated,
					"style":        map[string]any{"stroke": pkg.SchemaColor(schemaType)},
				})
			}
		}
	}

	nodeIDs := models.IDList{}
	for _, raw := range finalized.Nodes {
		node := nodeFromDocument(raw)
		if err := slf.graphRepo.CreateNode(&node); err != nil {
			slf.logger.Error().Err(err).Msg("Error saving template node")
			return nil, err
		}
		nodeIDs = append(nodeIDs, node.ID)
	}

	edgeIDs := models.IDList{}
	for _, raw := range finalized.Edges {
		edge := edgeFromDocument(raw)
		if err := slf.graphRepo.CreateEdge(&edge); err != nil {
			slf.logger.Error().Err(err).Msg("Error saving template edge")
			return nil, err
		}
		edgeIDs = append(edgeIDs, edge.ID)
	}

	builder := models.Builder{
		Nodes:   nodeIDs,
		Edges:   edgeIDs,
		Enabled: true,
	}
	if err := slf.builderRepo.CreateBuilder(&builder); err != nil {
		return nil, err
	}
	return &builder, nil
}

// sortedBuckets keeps provisioning deterministic across runs.
func sortedBuckets(params oas.Parameters) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldType(field map[string]any) string {
	schema, _ := field["schema"].(map[string]any)
	if t, ok := schema["type"].(string); ok {
		return t
	}
	return ""
}

func nodeFromDocument(raw models.JSONMap) models.Node {
	node := models.Node{}
	if id, ok := raw["id"].(string); ok {
		node.ClientID = id
	}
	if t, ok := raw["type"].(string); ok {
		node.Type = t
	}
	if data, ok := raw["data"].(map[string]any); ok {
		node.Data = data
	}
	if position, ok := raw["position"].(map[string]any); ok {
		node.Position = position
	}
	return node
}

func edgeFromDocument(raw models.JSONMap) models.Edge {
	edge := models.Edge{}
	if v, ok := raw["source"].(string); ok {
		edge.Source = v
	}
	if v, ok := raw["target"].(string); ok {
		edge.Target = v
	}
	if v, ok := raw["sourceHandle"].(string); ok {
		edge.SourceHandle = v
	}
	if v, ok := raw["targetHandle"].(string); ok {
		edge.TargetHandle = v
	}
	if v, ok := raw["animated"].(bool); ok {
		edge.Animated = v
	}
	if v, ok := raw["style"].(map[string]any); ok {
		edge.Style = v
	}
	if v, ok := raw["data"].(map[string]any); ok {
		edge.Data = v
	}
	return edge
}
