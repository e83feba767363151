package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/internal/api/service"
	"api/internal/oas"
	"api/pkg"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// builderIDHeader carries the inventory key mutation requests apply to.
const builderIDHeader = "x-sera-builder"

type builderHandler struct {
	hostMatchService *service.HostMatchService
	schemaService    *service.SchemaService
	builderService   *service.BuilderService
	endpointService  *service.EndpointService
	mutationService  *service.MutationService
	config           api.AppConfig
	logger           zerolog.Logger
}

func newBuilderHandler(mutationService *service.MutationService) *builderHandler {
	builderService := service.NewBuilderService()
	return &builderHandler{
		hostMatchService: service.NewHostMatchService(),
		schemaService:    service.NewSchemaService(),
		builderService:   builderService,
		endpointService:  service.NewEndpointService(builderService),
		mutationService:  mutationService,
		config:           api.GetConfig(),
		logger:           api.Logger,
	}
}

func BuilderHandler(router *graceful.Graceful, mutationService *service.MutationService) {
	h := newBuilderHandler(mutationService)

	routes := router.Group("/manage/builder")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.resolve)
		routes.POST("/create", h.create)

		routes.POST("/node", h.createNode)
		routes.POST("/node/delete", h.deleteNode)

		routes.POST("/edge", h.createEdge)
		routes.PATCH("/edge", h.updateEdge)
		routes.POST("/edge/delete", h.deleteEdge)
	}
}

// resolve materializes the graph for an inbound "<host>/<path>/<method>"
// string, or for a named playbook or integration when the event query
// parameter is set.
func (slf *builderHandler) resolve(c *gin.Context) {
	flavor, err := repo.ParseFlavor(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	if eventKey := c.Query("event"); eventKey != "" && flavor == repo.FlavorBuilder {
		flavor = repo.FlavorEvent
	}

	if flavor != repo.FlavorBuilder {
		slf.resolveKeyed(c, flavor, c.Query("event"))
		return
	}

	rawPath := c.Query("path")
	if rawPath == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "path query parameter required"})
		return
	}

	result, err := slf.hostMatchService.Resolve(rawPath)
	if err != nil {
		slf.respondResolutionError(c, result, err)
		return
	}

	schema := slf.extractSchema(result)
	doc := slf.documentSpec(result)

	if result.Endpoint.BuilderID == nil {
		c.JSON(http.StatusOK, response.Builder{
			Issue: response.ResolutionIssue{Error: service.CodeNoBuilder, Host: result.Host.ID},
			OAS:   doc,
		})
		return
	}

	builderID := strconv.FormatUint(uint64(*result.Endpoint.BuilderID), 10)
	graph, err := slf.builderService.GetBuilder(repo.FlavorBuilder, builderID, schema.Request, schema.Response)
	if err != nil {
		var resErr *service.ResolutionError
		if errors.As(err, &resErr) && resErr.Advisory() {
			c.JSON(http.StatusOK, response.Builder{
				Issue: response.ResolutionIssue{Error: resErr.Code, Host: result.Host.ID},
				OAS:   doc,
			})
			return
		}
		slf.logger.Error().Err(err).Str("builder", builderID).Msg("Error materializing builder")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to load builder"})
		return
	}

	c.JSON(http.StatusOK, response.Builder{
		Issue:     false,
		OAS:       doc,
		BuilderID: builderID,
		Builder:   graph,
	})
}

// resolveKeyed serves playbook and integration graphs. They have no
// endpoint context, so empty parameter trees are injected.
func (slf *builderHandler) resolveKeyed(c *gin.Context, flavor repo.Flavor, key string) {
	if key == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "event query parameter required"})
		return
	}

	graph, err := slf.builderService.GetBuilder(flavor, key, oas.EmptyParameters(), oas.EmptyParameters())
	if err != nil {
		var resErr *service.ResolutionError
		if errors.As(err, &resErr) && resErr.Advisory() {
			c.JSON(http.StatusOK, response.Builder{Issue: response.ResolutionIssue{Error: resErr.Code}})
			return
		}
		slf.logger.Error().Err(err).Str("builder", key).Msg("Error materializing keyed builder")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to load builder"})
		return
	}

	c.JSON(http.StatusOK, response.Builder{Issue: false, BuilderID: key, Builder: graph})
}

func (slf *builderHandler) extractSchema(result *service.MatchResult) *service.ExtractedSchema {
	if result.OAS == nil {
		return &service.ExtractedSchema{Method: result.Method}
	}
	schema := slf.schemaService.Extract(*result.OAS, result.Path, result.Method)
	return &schema
}

// documentSpec is the raw matched OpenAPI document carried on
// resolution payloads.
func (slf *builderHandler) documentSpec(result *service.MatchResult) models.JSONMap {
	if result == nil || result.OAS == nil {
		return nil
	}
	return result.OAS.Spec
}

func (slf *builderHandler) respondResolutionError(c *gin.Context, result *service.MatchResult, err error) {
	var resErr *service.ResolutionError
	if !errors.As(err, &resErr) {
		slf.logger.Error().Err(err).Msg("Error resolving builder path")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Resolution failed"})
		return
	}

	if !resErr.Advisory() {
		c.JSON(http.StatusInternalServerError, response.Builder{
			Issue: response.ResolutionIssue{Error: resErr.Code},
		})
		return
	}

	c.JSON(http.StatusOK, response.Builder{
		Issue: response.ResolutionIssue{Error: resErr.Code, Host: resErr.HostID},
		OAS:   slf.documentSpec(result),
	})
}

// create declares an endpoint and provisions its builder.
func (slf *builderHandler) create(c *gin.Context) {
	var req request.CreateBuilder
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	endpoint, err := slf.endpointService.Declare(req.HostID, req.Path, req.Method)
	if err != nil {
		slf.logger.Error().Err(err).Str("path", req.Path).Msg("Error declaring endpoint")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create builder"})
		return
	}

	c.JSON(http.StatusCreated, endpoint)
}

// mutationContext pulls the inventory key and flavor every mutation
// request must carry.
func (slf *builderHandler) mutationContext(c *gin.Context) (repo.Flavor, string, bool) {
	builderID := c.GetHeader(builderIDHeader)
	if builderID == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "x-sera-builder header required"})
		return "", "", false
	}
	flavor, err := repo.ParseFlavor(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return "", "", false
	}
	return flavor, builderID, true
}

func (slf *builderHandler) createNode(c *gin.Context) {
	flavor, builderID, ok := slf.mutationContext(c)
	if !ok {
		return
	}

	var req request.Node
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	node := mapper.NodeFromRequest(req)
	created, err := slf.mutationService.CreateNode(flavor, builderID, &node)
	if err != nil {
		slf.logger.Error().Err(err).Str("builder", builderID).Msg("Error creating node")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create node"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// deleteNode accepts the editor's deletion batch: an array of elements,
// each identified by its storage id.
func (slf *builderHandler) deleteNode(c *gin.Context) {
	flavor, builderID, ok := slf.mutationContext(c)
	if !ok {
		return
	}

	var req []request.DeleteNode
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	deleted := []any{}
	for _, entry := range req {
		node, err := slf.mutationService.DeleteNode(flavor, builderID, entry.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, response.APIError{Message: "Node not found"})
				return
			}
			slf.logger.Error().Err(err).Uint("node", entry.ID).Msg("Error deleting node")
			c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete node"})
			return
		}
		deleted = append(deleted, node)
	}

	c.JSON(http.StatusOK, deleted)
}

func (slf *builderHandler) createEdge(c *gin.Context) {
	flavor, builderID, ok := slf.mutationContext(c)
	if !ok {
		return
	}

	var req request.Edge
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	edge := mapper.EdgeFromRequest(req)
	created, err := slf.mutationService.CreateEdge(flavor, builderID, &edge)
	if err != nil {
		slf.logger.Error().Err(err).Str("builder", builderID).Msg("Error creating edge")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create edge"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// updateEdge patches the fields the editor sends flat on the body; the
// edge is addressed by its editor id.
func (slf *builderHandler) updateEdge(c *gin.Context) {
	flavor, builderID, ok := slf.mutationContext(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	edgeID, ok := edgeIDFromPayload(body)
	if !ok {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "edge id required"})
		return
	}

	updated, err := slf.mutationService.UpdateEdge(flavor, builderID, edgeID, body)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: "Edge not found"})
			return
		}
		slf.logger.Error().Err(err).Uint("edge", edgeID).Msg("Error updating edge")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to update edge"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// edgeIDFromPayload reads the edge identity off an editor payload:
// "id" is the stringified storage id, "_id" the numeric one.
func edgeIDFromPayload(body map[string]any) (uint, bool) {
	if id, ok := body["id"].(string); ok {
		if parsed, err := strconv.ParseUint(id, 10, 64); err == nil && parsed > 0 {
			return uint(parsed), true
		}
	}
	if id, ok := body["_id"].(float64); ok && id > 0 {
		return uint(id), true
	}
	return 0, false
}

func (slf *builderHandler) deleteEdge(c *gin.Context) {
	flavor, builderID, ok := slf.mutationContext(c)
	if !ok {
		return
	}

	var req []request.DeleteEdge
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	deleted := []any{}
	for _, entry := range req {
		edgeID, err := strconv.ParseUint(entry.ID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid edge id"})
			return
		}
		edge, err := slf.mutationService.DeleteEdge(flavor, builderID, uint(edgeID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, response.APIError{Message: "Edge not found"})
				return
			}
			slf.logger.Error().Err(err).Str("edge", entry.ID).Msg("Error deleting edge")
			c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete edge"})
			return
		}
		deleted = append(deleted, edge)
	}

	c.JSON(http.StatusOK, deleted)
}
