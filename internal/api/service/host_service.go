package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// HostService registers upstream hosts and their OpenAPI documents and
// serves host configuration reads and patches.
type HostService struct {
	hostRepo *repo.HostRepository
	oasRepo  *repo.OASRepository
	logger   zerolog.Logger
}

func NewHostService() *HostService {
	return &HostService{
		hostRepo: repo.NewHostRepository(),
		oasRepo:  repo.NewOASRepository(),
		logger:   api.Logger,
	}
}

// Register stores a new host together with its OpenAPI document. When
// no document is supplied a minimal one is synthesized so resolution
// always has something to match against. The raw document may be JSON
// or YAML.
func (slf *HostService) Register(hostname string, port int, forwardHost string, rawOAS []byte) (*models.Host, error) {
	cleaned := CleanHostname(hostname)
	if cleaned == "" {
		return nil, fmt.Errorf("hostname is empty after normalization")
	}

	if _, err := slf.hostRepo.FindByHostname(cleaned); err == nil {
		return nil, fmt.Errorf("host %q is already registered", cleaned)
	}

	spec, err := parseOASDocument(rawOAS)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		spec = minimalOASDocument(cleaned)
	}

	doc := models.OAS{Spec: spec}
	if err := slf.oasRepo.Create(&doc); err != nil {
		return nil, err
	}

	if port == 0 {
		port = 80
	}
	if forwardHost == "" {
		forwardHost = cleaned
	}

	host := models.Host{
		Hostname:  cleaned,
		OASSpecID: doc.ID,
		FrwdConfig: models.JSONMap{
			"host": forwardHost,
			"port": port,
		},
		SeraConfig: models.JSONMap{
			"strict": false,
			"learn":  true,
			"https":  true,
		},
	}
	if err := slf.hostRepo.Create(&host); err != nil {
		return nil, err
	}

	slf.logger.Info().Str("hostname", cleaned).Uint("oas", doc.ID).Msg("Host registered")
	return &host, nil
}

// Get returns one host by id.
func (slf *HostService) Get(id uint) (models.Host, error) {
	return slf.hostRepo.FindByID(id)
}

// List returns the registered hosts.
func (slf *HostService) List() ([]models.Host, error) {
	return slf.hostRepo.FindAll()
}

// PatchConfig merges one field into the host's behavior config and
// returns the updated host.
func (slf *HostService) PatchConfig(id uint, field string, value any) (models.Host, error) {
	return slf.hostRepo.PatchConfig(id, field, value)
}

// GetOAS returns the OpenAPI document a host references.
func (slf *HostService) GetOAS(hostID uint) (models.OAS, error) {
	host, err := slf.hostRepo.FindByID(hostID)
	if err != nil {
		return models.OAS{}, err
	}
	return slf.oasRepo.FindByID(host.OASSpecID)
}

// CleanHostname strips the scheme, path, query and trailing slash from
// a raw hostname input.
func CleanHostname(raw string) string {
	cleaned := schemePattern.ReplaceAllString(strings.TrimSpace(raw), "")
	cleaned = strings.SplitN(cleaned, "?", 2)[0]
	cleaned = strings.SplitN(cleaned, "/", 2)[0]
	return cleaned
}

// parseOASDocument decodes a raw OpenAPI document. JSON is tried first,
// YAML second. Empty input is not an error; it selects the minimal
// fallback document.
func parseOASDocument(raw []byte) (models.JSONMap, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var spec models.JSONMap
	if err := json.Unmarshal(raw, &spec); err == nil {
		return spec, nil
	}
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("document is neither valid JSON nor valid YAML: %w", err)
	}
	// YAML decoding can yield map[any]any below the top level; a JSON
	// round trip through yaml's own JSON-compatible typing keeps the
	// jsonb column clean.
	normalized, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("document does not normalize to JSON: %w", err)
	}
	var out models.JSONMap
	if err := json.Unmarshal(normalized, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func minimalOASDocument(hostname string) models.JSONMap {
	return models.JSONMap{
		"openapi": "3.0.1",
		"info": map[string]any{
			"title":   hostname,
			"version": "1.0.0",
		},
		"servers": []any{
			map[string]any{"url": hostname},
		},
		"paths": map[string]any{},
	}
}
