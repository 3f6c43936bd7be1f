package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/workflow"
)

// WorkflowHandler handles automation workflow HTTP requests.
type WorkflowHandler struct {
	workflows *workflow.Service
	metrics   *metrics.Metrics
	demoMode  bool
	logger    *log.Logger
}

// NewWorkflowHandler creates a new workflow handler.
func NewWorkflowHandler(workflows *workflow.Service, m *metrics.Metrics, demoMode bool, logger *log.Logger) *WorkflowHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &WorkflowHandler{
		workflows: workflows,
		metrics:   m,
		demoMode:  demoMode,
		logger:    logger,
	}
}

// TriggerWorkflow godoc
// @Summary Trigger a workflow
// @Description Manually kick off an automation workflow
// @Tags Workflows
// @Accept json
// @Produce json
// @Param request body models.TriggerWorkflowRequest true "Trigger details"
// @Success 200 {object} workflow.TriggerResult
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/workflows/trigger [post]
func (h *WorkflowHandler) TriggerWorkflow(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var req models.TriggerWorkflowRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	triggerType := workflow.TriggerType(req.TriggerType)
	h.metrics.RecordWorkflowTrigger(string(triggerType))

	if h.demoMode {
		return c.JSON(http.StatusOK, workflow.TriggerResult{
			Success: true,
			Message: "Workflow triggered (demo mode)",
		})
	}

	result := h.workflows.Trigger(ctx, triggerType, req.Data)
	return c.JSON(http.StatusOK, result)
}

// WorkflowWebhook godoc
// @Summary Automation engine webhook
// @Description Receive callbacks from the automation engine. Protected by the
// @Description shared webhook secret.
// @Tags Workflows
// @Accept json
// @Produce json
// @Success 200 {object} models.ReceivedResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/v1/workflows/webhook [post]
func (h *WorkflowHandler) WorkflowWebhook(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return apierrors.BadRequestError(c, "Invalid request body")
	}

	h.logger.Printf("🔔 Workflow webhook received: %v", body)

	return c.JSON(http.StatusOK, models.ReceivedResponse{Received: true})
}
