package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// ActivityHandler handles activity-log HTTP requests.
type ActivityHandler struct {
	store domain.LeadStore
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(store domain.LeadStore) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// ListActivities godoc
// @Summary List activities
// @Description List all logged activities, newest first
// @Tags Activities
// @Produce json
// @Success 200 {object} models.ActivityListResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/activities [get]
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	activities, err := h.store.ListActivities(ctx, "")
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.ActivityListResponse{Activities: activities})
}

// ListLeadActivities godoc
// @Summary List activities for one lead
// @Tags Activities
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.ActivityListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/activities/lead/{id} [get]
func (h *ActivityHandler) ListLeadActivities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	leadID := c.Param("id")
	if leadID == "" {
		return apierrors.BadRequestError(c, "Lead ID is required")
	}

	activities, err := h.store.ListActivities(ctx, leadID)
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusOK, models.ActivityListResponse{Activities: activities})
}

// CreateActivity godoc
// @Summary Log an activity
// @Description Log one immutable interaction record against a lead
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body models.CreateActivityRequest true "Activity details"
// @Success 201 {object} models.ActivityResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/activities [post]
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var req models.CreateActivityRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	activity, err := h.store.CreateActivity(ctx, domain.NewActivity{
		Type:        domain.ActivityType(req.Type),
		LeadID:      req.LeadID,
		Description: req.Description,
		Outcome:     domain.ActivityOutcome(req.Outcome),
	})
	if err != nil {
		return apierrors.Domain(c, err)
	}

	return c.JSON(http.StatusCreated, models.ActivityResponse{Activity: activity})
}
