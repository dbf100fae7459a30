package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type WaitlistEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	Email     string    `json:"email" db:"email"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type JoinWaitlistRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Source    string `json:"source"`
}
