package course

import (
	"errors"

	"inventory-sync/core/fetch"
	"inventory-sync/core/jobrun"
	"inventory-sync/core/logger"
	"inventory-sync/core/normalize"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the course job.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the course routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync/course")
	group.Post("/", h.HandleSync)
	group.Get("/plan", h.HandlePlan)
	group.Get("/last", h.HandleLast)
}

// HandleSync runs a sync and returns its result. A failed reconcile still
// returns the partial report.
// @Summary Run Course Sync
// @Description Fetches every course of the configured term and reconciles the course table (update, insert, delete). A failed phase returns the partial result and failed_phase.
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} pipeline.RunResult "Run Result"
// @Failure 409 {object} map[string]string "A run is already in progress"
// @Failure 422 {object} map[string]interface{} "Schema mismatch or duplicate identity"
// @Failure 502 {object} map[string]interface{} "Source unavailable"
// @Failure 503 {object} map[string]interface{} "Store unavailable"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /sync/course [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Course sync requested")

	res, err := h.service.Sync(c.Context())
	if err != nil {
		status := statusFor(err)
		l.Error("Course sync failed", zap.Int("status", status), zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if res != nil {
			body["result"] = res
		}
		var pe *reconcile.PhaseError
		if errors.As(err, &pe) {
			body["failed_phase"] = pe.Phase
		}
		return c.Status(status).JSON(body)
	}

	return c.JSON(res)
}

// HandlePlan returns the counts a sync would apply, without writing.
// @Summary Plan Course Sync
// @Description Fetches and normalizes the source and returns the counts a sync would apply. Nothing is written.
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} reconcile.PlanSummary "Plan Summary"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/course/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Plan(c.Context())
	if err != nil {
		l.Error("Course plan failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleLast returns the last recorded run.
// @Summary Last Course Run
// @Description Returns the most recent recorded run of the course job with its data source status.
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} jobrun.JobRun "Last Run"
// @Failure 404 {object} map[string]string "No runs recorded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/course/last [get]
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	run, err := h.service.Last(c.Context())
	if errors.Is(err, jobrun.ErrNoRuns) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load last run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrRunInProgress):
		return fiber.StatusConflict
	case errors.Is(err, fetch.ErrSourceUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, normalize.ErrSchemaMismatch), errors.Is(err, reconcile.ErrDuplicateIdentity):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
