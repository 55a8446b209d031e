package course

import (
	"inventory-sync/core/pipeline"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the course feature. A nil job disables it.
func NewFeature(job *pipeline.Job, runs RunReader, logger *zap.Logger) *Feature {
	svc := NewService(job, runs, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return JobName
}

// IsEnabled reports whether the job could be built.
func (f *Feature) IsEnabled() bool {
	return f.service.job != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
