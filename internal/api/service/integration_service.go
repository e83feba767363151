package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/pkg"
	"fmt"

	"github.com/rs/zerolog"
)

// IntegrationService manages external-integration inventories.
type IntegrationService struct {
	builderRepo *repo.BuilderRepository
	graphRepo   *repo.GraphRepository
	logger      zerolog.Logger
}

func NewIntegrationService() *IntegrationService {
	return &IntegrationService{
		builderRepo: repo.NewBuilderRepository(),
		graphRepo:   repo.NewGraphRepository(),
		logger:      api.Logger,
	}
}

// Create registers an empty integration inventory bound to a hostname.
func (slf *IntegrationService) Create(name string, integrationType string, hostname string, image *string) (*models.IntegrationBuilder, error) {
	slug := pkg.StringToSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("integration name %q yields an empty slug", name)
	}

	taken, err := slf.builderRepo.IntegrationSlugTaken(slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("integration slug %q is already in use", slug)
	}

	integration := models.IntegrationBuilder{
		Name:     name,
		Slug:     slug,
		Type:     integrationType,
		Hostname: CleanHostname(hostname),
		Enabled:  true,
		Nodes:    models.IDList{},
		Edges:    models.IDList{},
		Image:    image,
	}
	if err := slf.builderRepo.CreateIntegration(&integration); err != nil {
		return nil, err
	}

	slf.logger.Info().Str("slug", slug).Str("hostname", integration.Hostname).Msg("Integration created")
	return &integration, nil
}

// List returns every integration inventory.
func (slf *IntegrationService) List() ([]models.IntegrationBuilder, error) {
	return slf.builderRepo.FindIntegrations()
}

// Plugins flattens the node payloads of every enabled integration into
// one list, annotated with the owning slug, for the editor's palette.
func (slf *IntegrationService) Plugins() ([]models.JSONMap, error) {
	integrations, err := slf.builderRepo.FindIntegrations()
	if err != nil {
		return nil, err
	}

	plugins := []models.JSONMap{}
	for _, integration := range integrations {
		if !integration.Enabled {
			continue
		}
		nodes, err := slf.graphRepo.FindNodesByIDs(integration.Nodes)
		if err != nil {
			slf.logger.Error().Err(err).Str("slug", integration.Slug).Msg("Error loading integration nodes")
			continue
		}
		for _, node := range nodes {
			entry := models.JSONMap{
				"integration": integration.Slug,
				"type":        node.Type,
				"data":        node.Data,
			}
			plugins = append(plugins, entry)
		}
	}
	return plugins, nil
}
