// internal/handler/admin/admin_handler.go
package admin

import (
	"errors"
	"net/http"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/model/response/wrapper"
	service "github.com/dinerozz/landing-analytics-backend/internal/service/admin"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *service.AdminService
}

func NewAdminHandler(service *service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Auth godoc
// @Summary      Authenticate an administrator
// @Description  Verifies the password and issues a JWT carrying the admin role
// @Tags         /api/admin
// @Accept       json
// @Produce      json
// @Param        credentials  body      entity.AdminAuthRequest  true  "Credentials"
// @Success      200          {object}  wrapper.ResponseWrapper{data=response.AdminAuth}
// @Failure      400          {object}  wrapper.ErrorWrapper
// @Failure      403          {object}  wrapper.ErrorWrapper
// @Router       /api/admin/auth [post]
func (h *AdminHandler) Auth(c *gin.Context) {
	var req entity.AdminAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	auth, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{
				Message: "Invalid username or password",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Authentication failed",
		})
		return
	}

	c.SetCookie("token", auth.Token, 72*3600, "/", "", false, true)

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    auth,
		Success: true,
	})
}
