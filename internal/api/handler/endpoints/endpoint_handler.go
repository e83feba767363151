package endpoints

import (
	"api"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type endpointHandler struct {
	endpointService *service.EndpointService
	config          api.AppConfig
	logger          zerolog.Logger
}

func newEndpointHandler() *endpointHandler {
	return &endpointHandler{
		endpointService: service.NewEndpointService(service.NewBuilderService()),
		config:          api.GetConfig(),
		logger:          api.Logger,
	}
}

func EndpointHandler(router *graceful.Graceful) {
	h := newEndpointHandler()

	routes := router.Group("/manage/endpoint")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.declare)
		routes.POST("/update", h.update)
	}
}

// declare records a new endpoint mapping and provisions its builder.
func (slf *endpointHandler) declare(c *gin.Context) {
	var req request.DeclareEndpoint
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	endpoint, err := slf.endpointService.Declare(req.HostID, req.Path, req.Method)
	if err != nil {
		slf.logger.Error().Err(err).Str("path", req.Path).Msg("Error declaring endpoint")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, endpoint)
}

// update rebinds an endpoint to another builder inventory.
func (slf *endpointHandler) update(c *gin.Context) {
	var req request.UpdateEndpoint
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	endpoint, err := slf.endpointService.Rebind(req.ID, req.BuilderID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("endpoint", req.ID).Msg("Error rebinding endpoint builder")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to update endpoint"})
		return
	}
	c.JSON(http.StatusOK, endpoint)
}

func (slf *endpointHandler) getAll(c *gin.Context) {
	endpoints, err := slf.endpointService.List()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing endpoints")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve endpoints"})
		return
	}
	c.JSON(http.StatusOK, endpoints)
}

func (slf *endpointHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	endpoint, err := slf.endpointService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Endpoint not found"})
		return
	}
	c.JSON(http.StatusOK, endpoint)
}
