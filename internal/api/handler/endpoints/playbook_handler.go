package endpoints

import (
	"api"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/service"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type playbookHandler struct {
	playbookService *service.PlaybookService
	config          api.AppConfig
	logger          zerolog.Logger
}

func newPlaybookHandler() *playbookHandler {
	return &playbookHandler{
		playbookService: service.NewPlaybookService(),
		config:          api.GetConfig(),
		logger:          api.Logger,
	}
}

func PlaybookHandler(router *graceful.Graceful) {
	h := newPlaybookHandler()

	routes := router.Group("/manage")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("/playbook", h.getPlaybooks)
		routes.POST("/playbook", h.createPlaybook)

		routes.GET("/events", h.getEvents)
		routes.POST("/events", h.recordEvent)
	}
}

func (slf *playbookHandler) getPlaybooks(c *gin.Context) {
	playbooks, err := slf.playbookService.ListPlaybooks()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing playbooks")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve playbooks"})
		return
	}
	c.JSON(http.StatusOK, playbooks)
}

func (slf *playbookHandler) createPlaybook(c *gin.Context) {
	var req request.CreatePlaybook
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	playbook, err := slf.playbookService.CreatePlaybook(req.Name, req.Type)
	if err != nil {
		slf.logger.Error().Err(err).Str("name", req.Name).Msg("Error creating playbook")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, playbook)
}

func (slf *playbookHandler) getEvents(c *gin.Context) {
	events, err := slf.playbookService.ListEvents()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing events")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (slf *playbookHandler) recordEvent(c *gin.Context) {
	var req request.RecordEvent
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	event, err := slf.playbookService.RecordEvent(req.Event, req.Type, models.JSONMap(req.Data))
	if err != nil {
		slf.logger.Error().Err(err).Str("event", req.Event).Msg("Error recording event")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to record event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}
