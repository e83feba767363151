package mapper

import (
	"api/internal/api/handler/request"
	"api/internal/api/models"
)

// NodeFromRequest lifts an editor node payload into the storage model.
func NodeFromRequest(req request.Node) models.Node {
	return models.Node{
		ClientID: req.ID,
		Type:     req.Type,
		Data:     models.JSONMap(req.Data),
		Position: models.JSONMap(req.Position),
	}
}

// EdgeFromRequest lifts an editor edge payload into the storage model.
func EdgeFromRequest(req request.Edge) models.Edge {
	return models.Edge{
		Source:       req.Source,
		SourceHandle: req.SourceHandle,
		Target:       req.Target,
		TargetHandle: req.TargetHandle,
		Animated:     req.Animated,
		Style:        models.JSONMap(req.Style),
		Data:         models.JSONMap(req.Data),
	}
}
