package endpoints

import (
	"api"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type integrationHandler struct {
	integrationService *service.IntegrationService
	config             api.AppConfig
	logger             zerolog.Logger
}

func newIntegrationHandler() *integrationHandler {
	return &integrationHandler{
		integrationService: service.NewIntegrationService(),
		config:             api.GetConfig(),
		logger:             api.Logger,
	}
}

func IntegrationHandler(router *graceful.Graceful) {
	h := newIntegrationHandler()

	routes := router.Group("/manage/integration")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/plugins", h.getPlugins)
		routes.POST("", h.create)
	}
}

func (slf *integrationHandler) getAll(c *gin.Context) {
	integrations, err := slf.integrationService.List()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing integrations")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve integrations"})
		return
	}
	c.JSON(http.StatusOK, integrations)
}

func (slf *integrationHandler) getPlugins(c *gin.Context) {
	plugins, err := slf.integrationService.Plugins()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error flattening integration plugins")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve plugins"})
		return
	}
	c.JSON(http.StatusOK, plugins)
}

func (slf *integrationHandler) create(c *gin.Context) {
	var req request.CreateIntegration
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	integration, err := slf.integrationService.Create(req.Name, req.Type, req.Hostname, req.Image)
	if err != nil {
		slf.logger.Error().Err(err).Str("name", req.Name).Msg("Error creating integration")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, integration)
}
