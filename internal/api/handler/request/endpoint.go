package request

type DeclareEndpoint struct {
	HostID uint   `json:"host_id" validate:"required"`
	Path   string `json:"path" validate:"required"`
	Method string `json:"method" validate:"required"`
}

type UpdateEndpoint struct {
	ID        uint `json:"id" validate:"required"`
	BuilderID uint `json:"builder_id" validate:"required"`
}
