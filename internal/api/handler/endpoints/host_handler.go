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

type hostHandler struct {
	hostService *service.HostService
	config      api.AppConfig
	logger      zerolog.Logger
}

func newHostHandler() *hostHandler {
	return &hostHandler{
		hostService: service.NewHostService(),
		config:      api.GetConfig(),
		logger:      api.Logger,
	}
}

func HostHandler(router *graceful.Graceful) {
	h := newHostHandler()

	routes := router.Group("/manage/host")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.GET("/:id/oas", h.getOAS)
		routes.POST("", h.register)
		routes.PATCH("/:id/config", h.patchConfig)
	}
}

func (slf *hostHandler) getAll(c *gin.Context) {
	hosts, err := slf.hostService.List()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing hosts")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve hosts"})
		return
	}
	c.JSON(http.StatusOK, hosts)
}

func (slf *hostHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	host, err := slf.hostService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Host not found"})
		return
	}
	c.JSON(http.StatusOK, host)
}

func (slf *hostHandler) getOAS(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	doc, err := slf.hostService.GetOAS(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Document not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (slf *hostHandler) register(c *gin.Context) {
	var req request.RegisterHost
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	host, err := slf.hostService.Register(req.Hostname, req.Port, req.ForwardHost, req.OAS)
	if err != nil {
		slf.logger.Error().Err(err).Str("hostname", req.Hostname).Msg("Error registering host")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, host)
}

func (slf *hostHandler) patchConfig(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.PatchHostConfig
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	host, err := slf.hostService.PatchConfig(uint(id), req.Field, req.Value)
	if err != nil {
		slf.logger.Error().Err(err).Uint64("id", id).Msg("Error patching host config")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to patch host config"})
		return
	}
	c.JSON(http.StatusOK, host)
}
