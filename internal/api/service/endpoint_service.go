package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/pkg"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// EndpointService manages endpoint mappings and pairs a fresh builder
// with each newly declared endpoint.
type EndpointService struct {
	endpointRepo   *repo.EndpointRepository
	hostRepo       *repo.HostRepository
	builderService *BuilderService
	logger         zerolog.Logger
}

func NewEndpointService(builderService *BuilderService) *EndpointService {
	return &EndpointService{
		endpointRepo:   repo.NewEndpointRepository(),
		hostRepo:       repo.NewHostRepository(),
		builderService: builderService,
		logger:         api.Logger,
	}
}

// Declare records a new endpoint mapping for a host and provisions its
// builder from the seed template. The builder is attached before the
// endpoint is returned, so a successful declaration is always
// resolvable.
func (slf *EndpointService) Declare(hostID uint, path string, method string) (*models.Endpoint, error) {
	host, err := slf.hostRepo.FindByID(hostID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	method = strings.ToUpper(method)

	if _, err := slf.endpointRepo.FindByHostPathMethod(hostID, path, method); err == nil {
		return nil, fmt.Errorf("endpoint %s %s already declared for host %q", method, path, host.Hostname)
	}

	endpoint := models.Endpoint{
		HostID:   hostID,
		Endpoint: path,
		Method:   method,
		Config:   models.JSONMap{},
	}
	if err := slf.endpointRepo.Create(&endpoint); err != nil {
		return nil, err
	}

	builder, err := slf.builderService.ProvisionEndpointBuilder(hostID, host.Hostname, path, method)
	if err != nil {
		slf.logger.Error().Err(err).Str("endpoint", path).Msg("Error provisioning builder for endpoint")
		return nil, err
	}
	if err := slf.endpointRepo.AttachBuilder(endpoint.ID, builder.ID); err != nil {
		return nil, err
	}
	endpoint.BuilderID = pkg.ToPtr(builder.ID)

	slf.logger.Info().Str("method", method).Str("endpoint", path).Uint("builder", builder.ID).Msg("Endpoint declared")
	return &endpoint, nil
}

// Rebind points an existing endpoint at a different builder inventory.
func (slf *EndpointService) Rebind(endpointID uint, builderID uint) (models.Endpoint, error) {
	endpoint, err := slf.endpointRepo.FindByID(endpointID)
	if err != nil {
		return models.Endpoint{}, err
	}
	if err := slf.endpointRepo.AttachBuilder(endpoint.ID, builderID); err != nil {
		return models.Endpoint{}, err
	}
	endpoint.BuilderID = pkg.ToPtr(builderID)
	return endpoint, nil
}

// Get returns one endpoint with its host preloaded.
func (slf *EndpointService) Get(id uint) (models.Endpoint, error) {
	return slf.endpointRepo.FindByID(id)
}

// List returns every endpoint mapping.
func (slf *EndpointService) List() ([]models.Endpoint, error) {
	return slf.endpointRepo.FindAll()
}
