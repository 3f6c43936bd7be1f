package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/phone"
	"github.com/leadpilot/leadpilot/pkg/vapi"
	"github.com/leadpilot/leadpilot/pkg/workflow"
)

// CallHandler handles voice-call HTTP requests.
type CallHandler struct {
	store     domain.LeadStore
	telephony domain.Telephony
	workflows *workflow.Service
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// NewCallHandler creates a new call handler.
func NewCallHandler(store domain.LeadStore, telephony domain.Telephony, workflows *workflow.Service, m *metrics.Metrics, logger *log.Logger) *CallHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &CallHandler{
		store:     store,
		telephony: telephony,
		workflows: workflows,
		metrics:   m,
		logger:    logger,
	}
}

// ScheduleCall godoc
// @Summary Schedule a voice call
// @Description Ask the voice agent to call a lead and mark the lead Scheduled
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body models.ScheduleCallRequest true "Call details"
// @Success 200 {object} domain.ScheduledCall
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/calls/schedule [post]
func (h *CallHandler) ScheduleCall(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var req models.ScheduleCallRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	number, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return apierrors.BadRequestError(c, "Invalid phone number")
	}

	scheduled, err := h.telephony.ScheduleCall(ctx, number, req.LeadName, req.LeadCompany)
	if err != nil {
		return apierrors.Domain(c, err)
	}
	h.metrics.RecordCallScheduled()

	// Best-effort lead bookkeeping; the call is already scheduled.
	callStatus := domain.CallScheduled
	if _, err := h.store.UpdateLead(ctx, req.LeadID, domain.LeadPatch{CallStatus: &callStatus}); err != nil {
		h.logger.Printf("⚠️ Failed to mark lead %s as call-scheduled: %v", req.LeadID, err)
	}

	return c.JSON(http.StatusOK, scheduled)
}

// ListCalls godoc
// @Summary List calls
// @Description List recent calls from the voice vendor
// @Tags Calls
// @Produce json
// @Success 200 {object} models.CallListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/calls [get]
func (h *CallHandler) ListCalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	calls, err := h.telephony.ListCalls(ctx)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.CallListResponse{Calls: calls})
}

// CallWebhook godoc
// @Summary Voice vendor webhook
// @Description Receive end-of-call reports and raise the call-completed workflow
// @Tags Calls
// @Accept json
// @Produce json
// @Success 200 {object} models.ReceivedResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/calls/webhook [post]
func (h *CallHandler) CallWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return apierrors.BadRequestError(c, "Invalid request body")
	}

	event, err := vapi.ParseWebhook(body)
	if err != nil {
		return apierrors.BadRequestError(c, "Invalid webhook payload")
	}

	h.logger.Printf("📞 Call webhook: call %s finished (%s)", event.CallID, event.Status)

	// The automation engine gets the report regardless of webhook internals.
	h.metrics.RecordWorkflowTrigger(string(workflow.TriggerCallCompleted))
	h.workflows.TriggerAsync(workflow.TriggerCallCompleted, map[string]any{
		"call_id":  event.CallID,
		"status":   event.Status,
		"duration": event.Duration,
		"summary":  event.Summary,
		"outcome":  event.Outcome,
	})

	return c.JSON(http.StatusOK, models.ReceivedResponse{Received: true})
}
