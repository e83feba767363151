package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/pkg"
	"fmt"

	"github.com/rs/zerolog"
)

// PlaybookService manages event playbooks and the event stream they
// react to.
type PlaybookService struct {
	builderRepo *repo.BuilderRepository
	eventRepo   *repo.SeraEventRepository
	logger      zerolog.Logger
}

func NewPlaybookService() *PlaybookService {
	return &PlaybookService{
		builderRepo: repo.NewBuilderRepository(),
		eventRepo:   repo.NewSeraEventRepository(),
		logger:      api.Logger,
	}
}

// CreatePlaybook registers an empty playbook inventory under a slug
// derived from its name.
func (slf *PlaybookService) CreatePlaybook(name string, eventType string) (*models.EventBuilder, error) {
	slug := pkg.StringToSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("playbook name %q yields an empty slug", name)
	}

	taken, err := slf.builderRepo.EventSlugTaken(slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("playbook slug %q is already in use", slug)
	}

	playbook := models.EventBuilder{
		Name:    name,
		Slug:    slug,
		Type:    eventType,
		Enabled: true,
		Nodes:   models.IDList{},
		Edges:   models.IDList{},
	}
	if err := slf.builderRepo.CreateEventBuilder(&playbook); err != nil {
		return nil, err
	}

	slf.logger.Info().Str("slug", slug).Msg("Playbook created")
	return &playbook, nil
}

// ListPlaybooks returns every playbook inventory.
func (slf *PlaybookService) ListPlaybooks() ([]models.EventBuilder, error) {
	return slf.builderRepo.FindEventBuilders()
}

// RecordEvent appends one event to the stream.
func (slf *PlaybookService) RecordEvent(event string, eventType string, data models.JSONMap) (*models.SeraEvent, error) {
	record := models.SeraEvent{
		Event: event,
		Type:  eventType,
		Data:  data,
	}
	if err := slf.eventRepo.Create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListEvents returns the event stream, newest first.
func (slf *PlaybookService) ListEvents() ([]models.SeraEvent, error) {
	return slf.eventRepo.FindAll()
}
