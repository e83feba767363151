package service

// Resolution failure codes. NoHost is fatal; NoEndpoint and NoBuilder
// are advisory and travel back to the editor as issue payloads so it
// can offer to create the missing piece.
const (
	CodeNoHost     = "NoHost"
	CodeNoEndpoint = "NoEndpoint"
	CodeNoBuilder  = "NoBuilder"
)

// ResolutionError classifies a resolution failure and carries the host
// that was matched before the failure, when one was.
type ResolutionError struct {
	Code   string `json:"error"`
	HostID uint   `json:"host,omitempty"`
}

func (slf *ResolutionError) Error() string {
	return slf.Code
}

// Advisory reports whether the failure should surface as a 200 issue
// payload rather than a server error.
func (slf *ResolutionError) Advisory() bool {
	return slf.Code == CodeNoEndpoint || slf.Code == CodeNoBuilder
}
