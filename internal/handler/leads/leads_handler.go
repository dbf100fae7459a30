// internal/handler/leads/leads_handler.go
package leads

import (
	"errors"
	"net/http"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/model/response/wrapper"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
	submissionService "github.com/dinerozz/landing-analytics-backend/internal/service/submission"
	waitlistService "github.com/dinerozz/landing-analytics-backend/internal/service/waitlist"
	"github.com/gin-gonic/gin"
)

type LeadsHandler struct {
	waitlist    waitlistService.WaitlistService
	submissions submissionService.SubmissionService
}

func NewLeadsHandler(waitlist waitlistService.WaitlistService, submissions submissionService.SubmissionService) *LeadsHandler {
	return &LeadsHandler{
		waitlist:    waitlist,
		submissions: submissions,
	}
}

// JoinWaitlist godoc
// @Summary      Add an email to a project's waitlist
// @Tags         /api/public
// @Accept       json
// @Produce      json
// @Param        request  body      entity.JoinWaitlistRequest  true  "Waitlist entry"
// @Success      201      {object}  wrapper.ResponseWrapper{data=entity.WaitlistEntry}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      409      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /api/public/waitlist [post]
func (h *LeadsHandler) JoinWaitlist(c *gin.Context) {
	var req entity.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	entry, err := h.waitlist.Join(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, wrapper.ErrorWrapper{
				Message: "Email already on waitlist",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to join waitlist",
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    entry,
		Success: true,
	})
}

// CreateSubmission godoc
// @Summary      Capture an onboarding submission
// @Tags         /api/public
// @Accept       json
// @Produce      json
// @Param        request  body      entity.CreateSubmissionRequest  true  "Submission"
// @Success      201      {object}  wrapper.ResponseWrapper{data=entity.Submission}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /api/public/submit [post]
func (h *LeadsHandler) CreateSubmission(c *gin.Context) {
	var req entity.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	submission, err := h.submissions.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to create submission",
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    submission,
		Success: true,
	})
}
