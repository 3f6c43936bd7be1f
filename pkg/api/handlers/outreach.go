package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// OutreachHandler handles outreach-generation HTTP requests.
type OutreachHandler struct {
	store     domain.LeadStore
	generator domain.OutreachGenerator
	metrics   *metrics.Metrics
}

// NewOutreachHandler creates a new outreach handler.
func NewOutreachHandler(store domain.LeadStore, generator domain.OutreachGenerator, m *metrics.Metrics) *OutreachHandler {
	return &OutreachHandler{store: store, generator: generator, metrics: m}
}

// GenerateOutreach godoc
// @Summary Generate outreach copy
// @Description Generate a personalized email, LinkedIn or SMS message for a lead
// @Tags Outreach
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.OutreachRequest true "Channel and tone"
// @Success 200 {object} domain.OutreachResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/leads/{id}/outreach [post]
func (h *OutreachHandler) GenerateOutreach(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	id := c.Param("id")
	if id == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	var req models.OutreachRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	lead, err := h.store.GetLead(ctx, id)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	result, err := h.generator.Generate(ctx, lead, domain.OutreachChannel(req.Type), domain.OutreachTone(req.Tone))
	if err != nil {
		return apierrors.Domain(c, err)
	}

	h.metrics.RecordOutreachGenerated(string(result.Channel))
	return c.JSON(http.StatusOK, result)
}
