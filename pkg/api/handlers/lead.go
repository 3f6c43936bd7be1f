package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/export"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
	"github.com/leadpilot/leadpilot/pkg/scoring"
	"github.com/leadpilot/leadpilot/pkg/workflow"
)

// hotLeadThreshold is the score at which a freshly scored lead kicks off the
// hot-lead automation workflow.
const hotLeadThreshold = 70

// LeadHandler handles lead-related HTTP requests.
type LeadHandler struct {
	store     domain.LeadStore
	scoring   *scoring.Service
	exports   *export.Service
	workflows *workflow.Service
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(store domain.LeadStore, scoringService *scoring.Service, exportService *export.Service, workflows *workflow.Service, m *metrics.Metrics, logger *log.Logger) *LeadHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &LeadHandler{
		store:     store,
		scoring:   scoringService,
		exports:   exportService,
		workflows: workflows,
		metrics:   m,
		logger:    logger,
	}
}

// ListLeads godoc
// @Summary List leads
// @Description List leads with optional conjunctive filters
// @Tags Leads
// @Produce json
// @Param search query string false "Substring match on name, email or company"
// @Param score_label query string false "Score bucket" Enums(Hot, Warm, Cold)
// @Param status query string false "Pipeline stage"
// @Param source query string false "Lead source"
// @Success 200 {object} models.LeadListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/leads [get]
func (h *LeadHandler) ListLeads(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var req models.LeadListRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	leads, err := h.store.ListLeads(ctx, domain.LeadFilter{
		Search:     req.Search,
		ScoreLabel: domain.ScoreLabel(req.ScoreLabel),
		Status:     domain.LeadStatus(req.Status),
		Source:     domain.LeadSource(req.Source),
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.LeadListResponse{
		Leads: leads,
		Total: len(leads),
	})
}

// GetLead godoc
// @Summary Get a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/leads/{id} [get]
func (h *LeadHandler) GetLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	if id == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	lead, err := h.store.GetLead(ctx, id)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.LeadResponse{Lead: lead})
}

// CreateLead godoc
// @Summary Create a lead
// @Description Create a lead. When a classifier is configured the lead is
// @Description scored immediately; scoring failures never fail the creation.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.CreateLeadRequest true "Lead details"
// @Success 201 {object} models.LeadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/leads [post]
func (h *LeadHandler) CreateLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var req models.CreateLeadRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	lead, err := h.store.CreateLead(ctx, domain.NewLead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Title:       req.Title,
		LinkedInURL: req.LinkedInURL,
		Source:      domain.LeadSource(req.Source),
		Status:      domain.LeadStatus(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}

	// Auto-score the new lead. A scoring failure is logged, not surfaced: the
	// lead is already created.
	scored, result, err := h.scoring.ScoreAndStore(ctx, lead.ID)
	if err != nil {
		h.logger.Printf("⚠️ Auto-scoring failed for new lead %s: %v", lead.ID, err)
		h.metrics.RecordLeadScored(false)
		return c.JSON(http.StatusCreated, models.LeadResponse{Lead: lead})
	}
	h.metrics.RecordLeadScored(true)
	h.triggerHotLead(scored, result)

	return c.JSON(http.StatusCreated, models.LeadResponse{Lead: scored})
}

// UpdateLead godoc
// @Summary Update a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} models.LeadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/leads/{id} [patch]
func (h *LeadHandler) UpdateLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	id := c.Param("id")
	if id == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	var req models.UpdateLeadRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	patch := domain.LeadPatch{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Title:         req.Title,
		LinkedInURL:   req.LinkedInURL,
		Notes:         req.Notes,
		LastContacted: req.LastContacted,
		NextFollowUp:  req.NextFollowUp,
	}
	if req.Source != nil {
		source := domain.LeadSource(*req.Source)
		patch.Source = &source
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		patch.Status = &status
	}

	lead, err := h.store.UpdateLead(ctx, id, patch)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.LeadResponse{Lead: lead})
}

// DeleteLead godoc
// @Summary Delete a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	if id == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	if err := h.store.DeleteLead(ctx, id); err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Lead deleted successfully",
	})
}

// ScoreLead godoc
// @Summary Score a lead
// @Description Run the AI classifier on one lead and persist the result
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/leads/{id}/score [post]
func (h *LeadHandler) ScoreLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	id := c.Param("id")
	if id == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	lead, result, err := h.scoring.ScoreAndStore(ctx, id)
	if err != nil {
		h.metrics.RecordLeadScored(false)
		return apierrors.Domain(c, err)
	}
	h.metrics.RecordLeadScored(true)
	h.triggerHotLead(lead, result)

	return c.JSON(http.StatusOK, models.LeadResponse{Lead: lead})
}

// BulkScoreLeads godoc
// @Summary Score a batch of leads
// @Description Score up to 100 leads concurrently. Each lead succeeds or
// @Description fails on its own.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.BulkScoreRequest true "Lead IDs"
// @Success 200 {object} models.BulkScoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/leads/bulk-score [post]
func (h *LeadHandler) BulkScoreLeads(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Minute)
	defer cancel()

	var req models.BulkScoreRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	results := h.scoring.BulkScore(ctx, req.LeadIDs)
	for _, item := range results {
		h.metrics.RecordLeadScored(item.Success)
	}

	return c.JSON(http.StatusOK, models.BulkScoreResponse{Results: results})
}

// ImportLeads godoc
// @Summary Import a batch of leads
// @Description Import up to 500 leads in one request. Failures are reported
// @Description per lead and never abort the batch.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.ImportLeadsRequest true "Leads to import"
// @Success 200 {object} models.ImportLeadsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/leads/import [post]
func (h *LeadHandler) ImportLeads(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer cancel()

	var req models.ImportLeadsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp := models.ImportLeadsResponse{}
	for _, item := range req.Leads {
		lead, err := h.store.CreateLead(ctx, domain.NewLead{
			Name:        item.Name,
			Email:       item.Email,
			Phone:       item.Phone,
			Company:     item.Company,
			Title:       item.Title,
			LinkedInURL: item.LinkedInURL,
			Source:      domain.LeadSource(item.Source),
			Status:      domain.LeadStatus(item.Status),
			Notes:       item.Notes,
		})
		if err != nil {
			resp.Failed = append(resp.Failed, models.ImportFailure{
				Name:  item.Name,
				Email: item.Email,
				Error: err.Error(),
			})
			continue
		}
		resp.Imported = append(resp.Imported, *lead)
	}
	resp.Count = len(resp.Imported)
	h.metrics.RecordLeadsImported(resp.Count)

	return c.JSON(http.StatusOK, resp)
}

// ExportLeads godoc
// @Summary Export leads
// @Description Download the lead list as CSV or Excel
// @Tags Leads
// @Produce octet-stream
// @Param format query string false "File format" Enums(csv, excel) default(csv)
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/leads/export [get]
func (h *LeadHandler) ExportLeads(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	format := export.Format(c.QueryParam("format"))
	if format == "" {
		format = export.FormatCSV
	}
	if !format.Valid() {
		return apierrors.BadRequestError(c, "Invalid format: must be csv or excel")
	}

	var req models.LeadListRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	// Buffer the file so a mid-generation failure still yields a clean error
	// response.
	var buf bytes.Buffer
	count, err := h.exports.Export(ctx, &buf, format, domain.LeadFilter{
		Search:     req.Search,
		ScoreLabel: domain.ScoreLabel(req.ScoreLabel),
		Status:     domain.LeadStatus(req.Status),
		Source:     domain.LeadSource(req.Source),
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}

	h.metrics.RecordExportCreated()
	h.logger.Printf("📤 Exported %d leads as %s", count, format)

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename(format)+`"`)
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// triggerHotLead fires the hot-lead workflow when a scored lead crosses the
// threshold. Fire-and-forget: the caller never waits on the automation
// engine.
func (h *LeadHandler) triggerHotLead(lead *domain.Lead, result *domain.ScoreResult) {
	if result.Score < hotLeadThreshold {
		return
	}
	h.metrics.RecordWorkflowTrigger(string(workflow.TriggerHotLead))
	h.workflows.TriggerAsync(workflow.TriggerHotLead, map[string]any{
		"lead":  lead,
		"score": result,
	})
}
