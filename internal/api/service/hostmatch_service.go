package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var schemePattern = regexp.MustCompile(`^https?://`)

// MatchResult is a resolved inbound request: the best-matching host,
// the best-matching OpenAPI document, and the endpoint mapping if one
// exists. Host and document are selected independently; Diverged marks
// the case where the winning document is not the one the winning host
// references.
type MatchResult struct {
	Host     *models.Host
	OAS      *models.OAS
	Endpoint *models.Endpoint
	Path     string
	Method   string
	Diverged bool
}

// HostMatchService resolves raw "<host>/<path...>/<method>" strings to
// registered hosts and their OpenAPI documents by longest-prefix match.
type HostMatchService struct {
	hostRepo     *repo.HostRepository
	oasRepo      *repo.OASRepository
	endpointRepo *repo.EndpointRepository
	logger       zerolog.Logger
}

func NewHostMatchService() *HostMatchService {
	return &HostMatchService{
		hostRepo:     repo.NewHostRepository(),
		oasRepo:      repo.NewOASRepository(),
		endpointRepo: repo.NewEndpointRepository(),
		logger:       api.Logger,
	}
}

// Resolve matches an inbound path string against the registered hosts
// and documents. A missing endpoint mapping is advisory: the result
// still carries the matched host and document alongside the error.
func (slf *HostMatchService) Resolve(rawPath string) (*MatchResult, error) {
	segments := strings.Split(rawPath, "/")
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	if len(segments) < 2 {
		return nil, &ResolutionError{Code: CodeNoHost}
	}

	inboundHost := segments[0]
	method := strings.ToUpper(segments[len(segments)-1])
	path := strings.Join(segments[1:len(segments)-1], "/")

	substring := strings.Split(inboundHost, ":")[0]
	normalized := NormalizeURL(inboundHost + "/" + path)

	hosts, err := slf.hostRepo.FindContaining(substring)
	if err != nil {
		return nil, err
	}
	docs, err := slf.oasRepo.FindServerCandidates(substring)
	if err != nil {
		return nil, err
	}

	host := BestHostMatch(hosts, normalized)
	doc := BestDocumentMatch(docs, normalized)
	if host == nil {
		return nil, &ResolutionError{Code: CodeNoHost}
	}

	result := &MatchResult{
		Host:   host,
		OAS:    doc,
		Path:   "/" + path,
		Method: method,
	}
	if doc != nil && doc.ID != host.OASSpecID {
		result.Diverged = true
		slf.logger.Warn().
			Str("hostname", host.Hostname).
			Uint("hostOas", host.OASSpecID).
			Uint("matchedOas", doc.ID).
			Msg("Host and document matches point at different upstreams")
	}

	endpoint, err := slf.endpointRepo.FindByHostPathMethod(host.ID, result.Path, method)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, &ResolutionError{Code: CodeNoEndpoint, HostID: host.ID}
		}
		return result, err
	}
	result.Endpoint = &endpoint
	return result, nil
}

// NormalizeURL strips the scheme and query string, leaving the form
// the longest-prefix comparison runs on.
func NormalizeURL(raw string) string {
	stripped := schemePattern.ReplaceAllString(raw, "")
	return strings.SplitN(stripped, "?", 2)[0]
}

// BestHostMatch selects the host whose hostname is the longest prefix
// of the normalized URL. Ties keep the first-seen candidate.
func BestHostMatch(hosts []models.Host, normalizedURL string) *models.Host {
	var best *models.Host
	bestLength := 0
	for i := range hosts {
		hostname := hosts[i].Hostname
		if strings.HasPrefix(normalizedURL, hostname) && len(hostname) > bestLength {
			best = &hosts[i]
			bestLength = len(hostname)
		}
	}
	return best
}

// BestDocumentMatch selects the document with the longest scheme-
// stripped servers[].url prefix of the normalized URL. Selection is
// independent of the host match by design: a document may be reused
// across forwarding targets.
func BestDocumentMatch(docs []models.OAS, normalizedURL string) *models.OAS {
	var best *models.OAS
	bestLength := 0
	for i := range docs {
		for _, serverURL := range docs[i].ServerURLs() {
			serverNormalized := schemePattern.ReplaceAllString(serverURL, "")
			if strings.HasPrefix(normalizedURL, serverNormalized) && len(serverNormalized) > bestLength {
				best = &docs[i]
				bestLength = len(serverNormalized)
			}
		}
	}
	return best
}
