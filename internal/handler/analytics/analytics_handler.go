// internal/handler/analytics/analytics_handler.go
package analytics

import (
	"net/http"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/model/response/wrapper"
	service "github.com/dinerozz/landing-analytics-backend/internal/service/analytics"
	sessionService "github.com/dinerozz/landing-analytics-backend/internal/service/session"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service  service.AnalyticsService
	sessions sessionService.SessionService
}

func NewAnalyticsHandler(service service.AnalyticsService, sessions sessionService.SessionService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:  service,
		sessions: sessions,
	}
}

// ProjectAnalytics godoc
// @Summary      Per-project analytics report
// @Description  Aggregated visits, lead counts and conversion rate for one project
// @Tags         /api/admin
// @Accept       json
// @Produce      json
// @Param        request  body      entity.AnalyticsRequest  true  "Project selector"
// @Success      200      {object}  wrapper.ResponseWrapper{data=entity.ProjectAnalytics}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      403      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /api/admin/analytics [post]
func (h *AnalyticsHandler) ProjectAnalytics(c *gin.Context) {
	var req entity.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	report, err := h.service.ProjectAnalytics(c.Request.Context(), req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to load analytics",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    report,
		Success: true,
	})
}

// GlobalStats godoc
// @Summary      Portfolio-wide analytics
// @Tags         /api/admin
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.GlobalStats}
// @Failure      403  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /api/admin/global-stats [get]
func (h *AnalyticsHandler) GlobalStats(c *gin.Context) {
	stats, err := h.service.GlobalStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to load global stats",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    stats,
		Success: true,
	})
}

// ClearAnalytics godoc
// @Summary      Delete a project's aggregates and raw visits
// @Tags         /api/admin
// @Accept       json
// @Produce      json
// @Param        request  body      entity.ClearAnalyticsRequest  true  "Project selector"
// @Success      200      {object}  wrapper.ResponseWrapper{data=entity.ClearAnalyticsResult}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      403      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /api/admin/clearAnalytics [post]
func (h *AnalyticsHandler) ClearAnalytics(c *gin.Context) {
	var req entity.ClearAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.service.ClearAnalytics(c.Request.Context(), req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to clear analytics",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    result,
		Success: true,
	})
}

// CleanupSessions godoc
// @Summary      Delete sessions idle for more than 24 hours
// @Tags         /api/admin
// @Accept       json
// @Produce      json
// @Param        request  body      entity.CleanupSessionsRequest  true  "Project selector"
// @Success      200      {object}  wrapper.ResponseWrapper
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      403      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /api/admin/cleanupSessions [post]
func (h *AnalyticsHandler) CleanupSessions(c *gin.Context) {
	var req entity.CleanupSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	deleted, err := h.sessions.CleanupSessions(c.Request.Context(), req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to cleanup sessions",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    gin.H{"deletedCount": deleted},
		Success: true,
	})
}
