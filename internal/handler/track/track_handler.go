// internal/handler/track/track_handler.go
package track

import (
	"errors"
	"net/http"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/model/response/wrapper"
	service "github.com/dinerozz/landing-analytics-backend/internal/service/visit"
	"github.com/gin-gonic/gin"
)

type TrackHandler struct {
	service service.VisitService
}

func NewTrackHandler(service service.VisitService) *TrackHandler {
	return &TrackHandler{
		service: service,
	}
}

// TrackVisit godoc
// @Summary      Track a landing page visit
// @Description  Fold a visit event into the project's daily aggregate and append it to the raw log
// @Tags         /api/public
// @Accept       json
// @Produce      json
// @Param        visit  body      entity.TrackVisitRequest  true  "Visit data"
// @Success      200    {object}  wrapper.TrackWrapper
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /api/public/trackVisit [post]
func (h *TrackHandler) TrackVisit(c *gin.Context) {
	var req entity.TrackVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	_, sessionID, err := h.service.ApplyEvent(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingProjectID) {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "projectId is required",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to track visit",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.TrackWrapper{
		Message:   "Visit tracked",
		SessionID: sessionID,
		Success:   true,
	})
}

// TrackExit godoc
// @Summary      Track a landing page exit
// @Description  Finalize the session's time on page and scroll depth figures
// @Tags         /api/public
// @Accept       json
// @Produce      json
// @Param        exit  body      entity.TrackExitRequest  true  "Exit data"
// @Success      200   {object}  wrapper.SuccessWrapper
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /api/public/trackExit [post]
func (h *TrackHandler) TrackExit(c *gin.Context) {
	var req entity.TrackExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.service.ApplyExit(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrMissingProjectID) {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "projectId is required",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to track exit",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Exit tracked",
		Success: true,
	})
}
