package response

import (
	"github.com/gofrs/uuid"
)

type AdminAuth struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
}
