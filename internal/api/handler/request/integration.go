package request

// CreateIntegration registers an external integration bound to a
// hostname.
type CreateIntegration struct {
	Name     string  `json:"name" validate:"required"`
	Type     string  `json:"type" validate:"required"`
	Hostname string  `json:"hostname" validate:"required"`
	Image    *string `json:"image"`
}
