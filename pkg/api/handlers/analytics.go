package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/analytics"
	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
)

// AnalyticsHandler handles dashboard aggregation HTTP requests.
type AnalyticsHandler struct {
	analytics *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: service}
}

// GetOverview godoc
// @Summary Dashboard overview
// @Description Lead totals, score buckets, conversion rate and scheduled calls
// @Tags Analytics
// @Produce json
// @Success 200 {object} analytics.Overview
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	overview, err := h.analytics.GetOverview(ctx)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, overview)
}

// GetPipeline godoc
// @Summary Pipeline breakdown
// @Description Lead counts per pipeline stage, zero-filled, in canonical order
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.PipelineEntry
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/analytics/pipeline [get]
func (h *AnalyticsHandler) GetPipeline(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	pipeline, err := h.analytics.GetPipeline(ctx)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, pipeline)
}

// GetSources godoc
// @Summary Source breakdown
// @Description Lead counts per source, omitting sources with no leads
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.SourceEntry
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/analytics/sources [get]
func (h *AnalyticsHandler) GetSources(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	sources, err := h.analytics.GetSources(ctx)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, sources)
}

// GetFunnel godoc
// @Summary Conversion funnel
// @Description Forward-progress funnel from total through won
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.FunnelStage
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/analytics/funnel [get]
func (h *AnalyticsHandler) GetFunnel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	funnel, err := h.analytics.GetFunnel(ctx)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, funnel)
}
