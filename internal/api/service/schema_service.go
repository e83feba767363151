package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/internal/oas"
	"api/pkg"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const schemaCacheTTL = 5 * time.Minute

// ExtractedSchema is the parameter view of one (document, path, method)
// triple. Found is false when the document has no such pathway; the
// method is still reported so the editor can label the graph.
type ExtractedSchema struct {
	Request  oas.Parameters `json:"request"`
	Response oas.Parameters `json:"response"`
	Method   string         `json:"method"`
	Found    bool           `json:"found"`
}

// SchemaService extracts parameter trees from stored OpenAPI documents,
// with a Redis read-through cache per (document, path, method).
type SchemaService struct {
	oasRepo *repo.OASRepository
	logger  zerolog.Logger
}

func NewSchemaService() *SchemaService {
	return &SchemaService{
		oasRepo: repo.NewOASRepository(),
		logger:  api.Logger,
	}
}

// Extract returns the request/response parameter trees for a path and
// method. Extraction failures degrade to empty trees: a graph resolved
// against an unparsable document still materializes, just without
// injected schema.
func (slf *SchemaService) Extract(doc models.OAS, path string, method string) ExtractedSchema {
	cacheKey := fmt.Sprintf("oas:params:%d:%s:%s", doc.ID, path, method)

	var cached ExtractedSchema
	if err := pkg.RedisGet(cacheKey, &cached); err == nil {
		return cached
	} else if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Str("key", cacheKey).Msg("Schema cache read failed")
	}

	schema := slf.extract(doc, path, method)

	if err := pkg.RedisSet(cacheKey, schema, schemaCacheTTL); err != nil {
		slf.logger.Warn().Err(err).Str("key", cacheKey).Msg("Schema cache write failed")
	}
	return schema
}

func (slf *SchemaService) extract(doc models.OAS, path string, method string) ExtractedSchema {
	schema := ExtractedSchema{Method: method}

	document := oas.Document(doc.Spec)
	operation := document.Operation(path, method)
	if operation == nil {
		return schema
	}

	schema.Found = true
	schema.Request = document.RequestParameters(operation)
	schema.Response = document.ResponseParameters(operation)
	return schema
}
