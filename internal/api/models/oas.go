package models

// OAS holds one OpenAPI document. The document is stored permissively:
// beyond the top-level shape nothing is validated, and unknown keys
// survive round-trips untouched. One document may serve several hosts
// whose server URLs prefix-match it.
type OAS struct {
	ID   uint    `gorm:"primaryKey" json:"_id"`
	Spec JSONMap `gorm:"type:jsonb" json:"spec"`
}

func (OAS) TableName() string { return "oas_inventory" }

// ServerURLs returns the servers[].url entries of the document.
func (slf OAS) ServerURLs() []string {
	if slf.Spec == nil {
		return nil
	}
	raw, ok := slf.Spec["servers"].([]any)
	if !ok {
		return nil
	}
	urls := make([]string, 0, len(raw))
	for _, entry := range raw {
		server, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if url, ok := server["url"].(string); ok {
			urls = append(urls, url)
		}
	}
	return urls
}
