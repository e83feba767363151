package pkg

import (
	"api"
	"api/internal/api/repo"
	"fmt"
	"net/http"
	"strings"
)

// SequencerClient pokes the downstream sequencer when a builder's graph
// changes. Notifications are fire-and-forget; the sequencer re-reads
// the inventory on its own schedule, so a lost poke costs freshness,
// not correctness.
type SequencerClient struct {
	host    string
	service string
	client  *http.Client
}

func NewSequencerClient() *SequencerClient {
	cfg := api.GetConfig()
	return &SequencerClient{
		host:    strings.TrimSuffix(cfg.Sequencer.Host, "/"),
		service: cfg.Sequencer.ServiceName,
		client:  &http.Client{},
	}
}

// Notify posts the change signal asynchronously. Failures are logged
// and dropped.
func (slf *SequencerClient) Notify(flavor repo.Flavor, builderID string) {
	url := fmt.Sprintf("%s/%s/%s", slf.host, flavor, builderID)
	go func() {
		req, err := http.NewRequest(http.MethodPost, url, nil)
		if err != nil {
			api.Logger.Error().Err(err).Str("url", url).Msg("Error building sequencer notification")
			return
		}
		req.Header.Set("X-Sera-Service", slf.service)

		resp, err := slf.client.Do(req)
		if err != nil {
			api.Logger.Warn().Err(err).Str("url", url).Msg("Sequencer notification failed")
			return
		}
		resp.Body.Close()
	}()
}
