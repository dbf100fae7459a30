package entity

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
)

type Submission struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ProjectID string          `json:"projectId" db:"project_id"`
	Email     string          `json:"email" db:"email"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

type CreateSubmissionRequest struct {
	ProjectID string          `json:"projectId" binding:"required"`
	Email     string          `json:"email"`
	Payload   json.RawMessage `json:"payload"`
}
